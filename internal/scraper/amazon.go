package scraper

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Kdheeru12/ad-generator/internal/config"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/84.0.4147.135 Safari/537.36"
	defaultMaxImages = 8
	highResSuffix    = "SL1500"
)

var (
	titleRe       = regexp.MustCompile(`(?s)<span[^>]*id="productTitle"[^>]*>(.*?)</span>`)
	priceRe       = regexp.MustCompile(`(?s)<span[^>]*id="priceblock_(?:ourprice|dealprice)"[^>]*>(.*?)</span>`)
	descriptionRe = regexp.MustCompile(`(?s)<div[^>]*id="productDescription"[^>]*>(.*?)</div>`)
	hiResImageRe  = regexp.MustCompile(`"hiRes"\s*:\s*"(https://[^"]+)"`)
	altImageRe    = regexp.MustCompile(`<img[^>]+src="(https://[^"]*media-amazon[^"]+\.jpg)"`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	sizeSuffixRe  = regexp.MustCompile(`\._[^.]+_\.`)
)

// AmazonScraper extracts a product record and its gallery images from an
// Amazon listing page. It is intentionally dumb glue: one GET for the page,
// one GET per unique high-res image.
type AmazonScraper struct {
	userAgent string
	maxImages int
	client    *http.Client
	logger    logger.Logger
}

func NewAmazonScraper(cfg *config.Config, log logger.Logger) *AmazonScraper {
	userAgent := cfg.Scraper.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxImages := cfg.Scraper.MaxImages
	if maxImages <= 0 {
		maxImages = defaultMaxImages
	}
	timeout := 30 * time.Second
	if cfg.Scraper.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second
	}
	return &AmazonScraper{
		userAgent: userAgent,
		maxImages: maxImages,
		client:    &http.Client{Timeout: timeout},
		logger:    log,
	}
}

func (s *AmazonScraper) Scrape(ctx context.Context, pageURL string) (*ProductPage, error) {
	body, err := s.get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product page: %w", err)
	}

	title := extractText(titleRe, body)
	if title == "" {
		return nil, fmt.Errorf("no product title found at %s", pageURL)
	}

	page := &ProductPage{
		Product: models.ProductRecord{
			Title:       title,
			Price:       extractText(priceRe, body),
			Description: extractText(descriptionRe, body),
		},
	}

	downloaded := make(map[string]struct{})
	for _, imgURL := range imageURLs(body) {
		if len(page.Images) >= s.maxImages {
			break
		}
		highRes := ToHighResURL(imgURL)
		if _, ok := downloaded[highRes]; ok {
			continue
		}
		downloaded[highRes] = struct{}{}

		data, err := s.get(ctx, highRes)
		if err != nil {
			s.logger.Warnf("image download failed for %s: %v", highRes, err)
			continue
		}
		if _, _, err = image.Decode(bytes.NewReader(data)); err != nil {
			s.logger.Warnf("skipping undecodable image %s: %v", highRes, err)
			continue
		}
		page.Images = append(page.Images, data)
	}

	if len(page.Images) == 0 {
		return nil, fmt.Errorf("no product images found at %s", pageURL)
	}
	return page, nil
}

func (s *AmazonScraper) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ToHighResURL strips the sizing suffix from a gallery thumbnail URL and
// re-tags it with the high-resolution variant.
func ToHighResURL(imgURL string) string {
	imgURL = sizeSuffixRe.ReplaceAllString(imgURL, ".")
	if !strings.Contains(imgURL, "_"+highResSuffix+"_") {
		imgURL = strings.Replace(imgURL, ".jpg", fmt.Sprintf("._%s_.jpg", highResSuffix), 1)
	}
	return imgURL
}

func imageURLs(body []byte) []string {
	var urls []string
	for _, m := range hiResImageRe.FindAllSubmatch(body, -1) {
		urls = append(urls, string(m[1]))
	}
	if len(urls) > 0 {
		return urls
	}
	for _, m := range altImageRe.FindAllSubmatch(body, -1) {
		urls = append(urls, string(m[1]))
	}
	return urls
}

func extractText(re *regexp.Regexp, body []byte) string {
	m := re.FindSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(string(m[1]), " ")))
}
