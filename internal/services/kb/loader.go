package kb

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/janmitra/janmitra/internal/models"
)

// kbDocument is the YAML schema for a knowledge file: curated passages plus
// optional structured booth records that get rendered into passages.
type kbDocument struct {
	Passages []kbPassage  `yaml:"passages"`
	Booths   []boothEntry `yaml:"booths"`
}

type kbPassage struct {
	ID       string                 `yaml:"id"`
	Content  string                 `yaml:"content"`
	Metadata models.PassageMetadata `yaml:"metadata"`
}

type boothEntry struct {
	Number  int    `yaml:"number"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	PIN     string `yaml:"pin"`
	Ward    string `yaml:"ward"`
}

// Loader reads knowledge files from a directory into passages. Supported
// formats are .yaml/.yml (curated passages and booth records), .md, and .html;
// markup files are flattened to plain text before indexing.
type Loader struct {
	logger arbor.ILogger
}

// NewLoader creates a knowledge base loader
func NewLoader(logger arbor.ILogger) *Loader {
	return &Loader{logger: logger}
}

// Load reads every supported file under dataDir. An empty dataDir returns the
// built-in seed set so the assistant works out of the box.
func (l *Loader) Load(dataDir string) ([]*models.Passage, error) {
	if dataDir == "" {
		l.logger.Info().Int("passages", len(seedPassages)).Msg("Using built-in knowledge base")
		return seedPassages, nil
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base directory: %w", err)
	}

	var passages []*models.Passage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dataDir, entry.Name())
		loaded, err := l.loadFile(path)
		if err != nil {
			l.logger.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping unreadable knowledge file")
			continue
		}
		passages = append(passages, loaded...)
	}

	if len(passages) == 0 {
		return nil, fmt.Errorf("no passages loaded from %s", dataDir)
	}

	l.logger.Info().
		Str("data_dir", dataDir).
		Int("passages", len(passages)).
		Msg("Knowledge base loaded")

	return passages, nil
}

func (l *Loader) loadFile(path string) ([]*models.Passage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return l.parseYAML(path, data)
	case ".md", ".markdown":
		return l.parseMarkdown(path, data)
	case ".html", ".htm":
		return l.parseHTML(path, data)
	default:
		return nil, nil
	}
}

func (l *Loader) parseYAML(path string, data []byte) ([]*models.Passage, error) {
	var doc kbDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	var passages []*models.Passage
	for i, p := range doc.Passages {
		if strings.TrimSpace(p.Content) == "" {
			continue
		}
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", fileID(path), i)
		}
		passages = append(passages, &models.Passage{
			ID:       id,
			Content:  strings.TrimSpace(p.Content),
			Metadata: p.Metadata,
		})
	}

	for _, b := range doc.Booths {
		passages = append(passages, &models.Passage{
			ID: fmt.Sprintf("booth-%d", b.Number),
			Content: fmt.Sprintf(
				"Polling booth %d (%s) is located at %s, PIN code %s. Ward: %s. Voters assigned to this booth can verify their booth number on their voter information slip or by searching the electoral roll with their EPIC ID.",
				b.Number, b.Name, b.Address, b.PIN, b.Ward),
			Metadata: models.PassageMetadata{
				Source:  "Booth directory",
				Section: fmt.Sprintf("Booth %d", b.Number),
			},
		})
	}

	return passages, nil
}

// parseMarkdown renders the markdown and strips the markup, keeping plain
// text for lexical and vector indexing.
func (l *Loader) parseMarkdown(path string, data []byte) ([]*models.Passage, error) {
	var rendered bytes.Buffer
	if err := goldmark.Convert(data, &rendered); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	return l.passagesFromHTML(path, rendered.Bytes())
}

// parseHTML converts the page to markdown first, which drops scripts, styles
// and navigation chrome, then flattens the result like a markdown file.
func (l *Loader) parseHTML(path string, data []byte) ([]*models.Passage, error) {
	converter := htmltomarkdown.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", filepath.Base(path), err)
	}
	return l.parseMarkdown(path, []byte(markdown))
}

// passagesFromHTML extracts text per top-level section, one passage per
// heading, so retrieval can score sections independently.
func (l *Loader) passagesFromHTML(path string, rendered []byte) ([]*models.Passage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered %s: %w", filepath.Base(path), err)
	}

	type section struct {
		heading string
		text    strings.Builder
	}

	sections := []*section{{}}
	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "h1" || goquery.NodeName(s) == "h2" {
			sections = append(sections, &section{heading: strings.TrimSpace(s.Text())})
			return
		}
		text := strings.TrimSpace(s.Text())
		if text != "" {
			current := sections[len(sections)-1]
			if current.text.Len() > 0 {
				current.text.WriteString(" ")
			}
			current.text.WriteString(text)
		}
	})

	var passages []*models.Passage
	for i, sec := range sections {
		content := strings.TrimSpace(sec.text.String())
		if content == "" {
			continue
		}
		passages = append(passages, &models.Passage{
			ID:      fmt.Sprintf("%s-%d", fileID(path), i),
			Content: content,
			Metadata: models.PassageMetadata{
				Source:  filepath.Base(path),
				Section: sec.heading,
			},
		})
	}

	if len(passages) == 0 {
		return nil, fmt.Errorf("no text content in %s", filepath.Base(path))
	}
	return passages, nil
}

func fileID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
