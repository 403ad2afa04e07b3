package interfaces

import "github.com/janmitra/janmitra/internal/models"

// ClassifierService assigns a query to one civic-intent category.
// Classification is a pure function, independent of retrieval.
type ClassifierService interface {
	Classify(query string) *models.ClassificationResult
}
