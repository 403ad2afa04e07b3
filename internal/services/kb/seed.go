package kb

import "github.com/janmitra/janmitra/internal/models"

// seedPassages is the built-in knowledge set used when no data directory is
// configured. Content mirrors the public voter-services pages of the Election
// Commission of India.
var seedPassages = []*models.Passage{
	{
		ID: "registration-new-voter",
		Content: "To register as a new voter, fill Form 6 online at voters.eci.gov.in or through the Voter Helpline app. " +
			"You must be an Indian citizen and at least 18 years old on the qualifying date. " +
			"Registration can also be done offline by submitting Form 6 to your Booth Level Officer (BLO) or Electoral Registration Officer (ERO). " +
			"After verification you receive an EPIC (Elector Photo Identity Card) with a unique ID like ABC1234567.",
		Metadata: models.PassageMetadata{
			Source:      "Voter registration guide",
			URL:         "https://voters.eci.gov.in",
			LastUpdated: "2026-04-01",
			Section:     "New registration",
		},
	},
	{
		ID: "registration-address-change",
		Content: "If you have shifted residence, submit Form 8 to transfer your voter registration to the new address. " +
			"You do not need to register again; the same EPIC number stays valid after the transfer. " +
			"Corrections to name, photo, date of birth or other details on the electoral roll also use Form 8.",
		Metadata: models.PassageMetadata{
			Source:      "Voter registration guide",
			URL:         "https://voters.eci.gov.in",
			LastUpdated: "2026-04-01",
			Section:     "Shifting and corrections",
		},
	},
	{
		ID: "booth-finding",
		Content: "To find your polling booth, search the electoral roll at electoralsearch.eci.gov.in with your EPIC ID, " +
			"or send your EPIC number by SMS to 1950. Your voter information slip, distributed before polling day, " +
			"also lists the booth number and address. Booth details can change between elections, so verify close to polling day.",
		Metadata: models.PassageMetadata{
			Source:      "Booth locator help",
			URL:         "https://electoralsearch.eci.gov.in",
			LastUpdated: "2026-03-15",
			Section:     "Finding your booth",
		},
	},
	{
		ID: "roll-lookup",
		Content: "You can check whether your name appears on the electoral roll at electoralsearch.eci.gov.in. " +
			"Search by EPIC number, or by name with state, district and constituency. " +
			"If your name is missing despite a valid EPIC card, contact your Electoral Registration Officer or call the 1950 voter helpline.",
		Metadata: models.PassageMetadata{
			Source:      "Electoral roll search",
			URL:         "https://electoralsearch.eci.gov.in",
			LastUpdated: "2026-03-15",
			Section:     "Roll search",
		},
	},
	{
		ID: "documents-polling-day",
		Content: "On polling day, carry your EPIC card or one of the alternative photo identity documents accepted by the " +
			"Election Commission: Aadhaar card, passport, driving licence, PAN card, MGNREGA job card, bank or post office " +
			"passbook with photograph, pension document with photograph, or service identity card. " +
			"A voter information slip alone is not valid identification.",
		Metadata: models.PassageMetadata{
			Source:      "Polling day documents",
			URL:         "https://eci.gov.in",
			LastUpdated: "2026-02-20",
			Section:     "Accepted identity documents",
		},
	},
	{
		ID: "voting-procedure-evm",
		Content: "Inside the polling booth, your identity is verified against the roll and your finger is marked with indelible ink. " +
			"You cast your vote on an Electronic Voting Machine (EVM) by pressing the button next to your chosen candidate. " +
			"The VVPAT (Voter Verifiable Paper Audit Trail) displays a printed slip for seven seconds so you can verify your vote was recorded correctly. " +
			"If no candidate is acceptable, the NOTA (None Of The Above) option is available at the end of the ballot.",
		Metadata: models.PassageMetadata{
			Source:      "Voting procedure",
			URL:         "https://eci.gov.in",
			LastUpdated: "2026-02-20",
			Section:     "EVM and VVPAT",
		},
	},
	{
		ID: "voting-rules-eligibility",
		Content: "Voting is open to every registered elector whose name appears on the electoral roll of the constituency. " +
			"Polling hours are typically 7 AM to 6 PM; anyone in the queue at closing time is allowed to vote. " +
			"Proxy voting is limited to classified service voters. Voting on behalf of another person is an electoral offence.",
		Metadata: models.PassageMetadata{
			Source:      "Voting rules",
			URL:         "https://eci.gov.in",
			LastUpdated: "2026-02-20",
			Section:     "Eligibility and hours",
		},
	},
	{
		ID: "postal-ballot",
		Content: "Postal ballots are available to service voters, electors on election duty, and electors above 85 years of age " +
			"or with benchmark disabilities who opt in through Form 12D within five days of the election notification. " +
			"The marked ballot must reach the Returning Officer before counting begins.",
		Metadata: models.PassageMetadata{
			Source:      "Postal ballot guide",
			URL:         "https://eci.gov.in",
			LastUpdated: "2026-01-30",
			Section:     "Postal voting",
		},
	},
	{
		ID: "complaint-cvigil",
		Content: "To report a violation of the Model Code of Conduct, such as cash distribution, hate speech or campaigning " +
			"during the silence period, use the cVIGIL mobile app. Upload a photo or video with location; complaints are " +
			"acted on within 100 minutes. Complaints about polling officials or booth irregularities can also be filed " +
			"with the District Election Officer or on the 1950 helpline.",
		Metadata: models.PassageMetadata{
			Source:      "Complaint channels",
			URL:         "https://cvigil.eci.gov.in",
			LastUpdated: "2026-03-01",
			Section:     "Reporting violations",
		},
	},
	{
		ID: "timeline-election",
		Content: "An election follows a fixed timeline after the notification: nominations open for seven days, " +
			"scrutiny happens the following day, and candidates may withdraw within two more days. " +
			"Campaigning ends 48 hours before polling (the silence period). Counting day and result declaration are " +
			"announced in the election schedule published by the Election Commission.",
		Metadata: models.PassageMetadata{
			Source:      "Election timeline",
			URL:         "https://eci.gov.in",
			LastUpdated: "2026-01-15",
			Section:     "Schedule",
		},
	},
	{
		ID: "helpline-contacts",
		Content: "The national voter helpline 1950 answers questions about registration, the electoral roll and polling booths " +
			"in English, Hindi and regional languages. Prefix your STD code when calling from a mobile. " +
			"The Voter Helpline app provides the same services, including EPIC download and application status tracking.",
		Metadata: models.PassageMetadata{
			Source:      "Helpline",
			URL:         "https://eci.gov.in",
			LastUpdated: "2026-03-01",
			Section:     "Contacts",
		},
	},
	{
		ID: "epic-download",
		Content: "A digital copy of your EPIC card (e-EPIC) can be downloaded as a PDF from voters.eci.gov.in or the Voter " +
			"Helpline app after verifying the mobile number linked to your registration. The e-EPIC is valid identification " +
			"at the polling booth when presented with its secure QR code.",
		Metadata: models.PassageMetadata{
			Source:      "e-EPIC guide",
			URL:         "https://voters.eci.gov.in",
			LastUpdated: "2026-02-10",
			Section:     "Digital voter card",
		},
	},
}
