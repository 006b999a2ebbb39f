package scraper

import (
	"context"

	"github.com/Kdheeru12/ad-generator/internal/models"
)

// ProductPage is everything the pipeline needs from a listing: the product
// record plus the ordered, already-decoded image payloads.
type ProductPage struct {
	Product models.ProductRecord
	Images  [][]byte
}

type Scraper interface {
	Scrape(ctx context.Context, pageURL string) (*ProductPage, error)
}
