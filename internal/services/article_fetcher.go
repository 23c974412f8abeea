package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/blossomhealth/blossom/internal/models"
)

const (
	defaultHealthFinderURL = "https://health.gov/myhealthfinder/api/v3/topicsearch.json"
	defaultWikipediaURL    = "https://en.wikipedia.org/w/api.php"

	wikipediaBatchSize    = 10
	articleFieldLimit     = 200
	wikipediaExtractLimit = 300
	defaultCategoryName   = "General Health"
	educationCategoryName = "Education"
)

// articleKeywords is the curated search list the feed is built from.
var articleKeywords = []string{
	"Women's health", "Maternal health", "Pregnancy care", "Breast cancer awareness", "Reproductive health",
	"Menstrual health", "PCOS", "Endometriosis", "Fibroids", "Osteoporosis prevention", "Heart health",
	"Cervical cancer", "HPV vaccine", "Menopause", "Sexual health", "Infertility treatments", "Prenatal nutrition",
	"Mental health", "Depression", "Anxiety", "Stress management", "Self-care", "Burnout recovery", "Mindfulness",
	"Postpartum depression", "Meditation", "Cognitive behavioral therapy", "PTSD in women", "Emotional intelligence",
	"Self-love", "Confidence", "Healthy relationships", "Yoga for balance", "Sound healing", "Aromatherapy",
	"Intermittent fasting", "Holistic wellness", "Hydration", "Healthy gut", "Social well-being",
}

// categoryRules assign a feed category to the first matching term found in
// an article's title or summary, checked in order.
var categoryRules = []struct {
	Name  string
	Terms []string
}{
	{"Physical Health", []string{"pregnancy", "breast cancer", "reproductive health", "osteoporosis", "heart health"}},
	{"Mental Health", []string{"depression", "anxiety", "stress", "ptsd", "cbt"}},
	{"Emotional Well-being", []string{"self-care", "mindfulness", "confidence", "healthy relationships", "yoga"}},
	{"Nutrition & Wellness", []string{"nutrition", "hydration", "gut health", "superfoods", "herbal remedies"}},
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ArticleFetcher ingests health articles from the HealthFinder and
// Wikipedia APIs into the feed, skipping items already stored.
type ArticleFetcher struct {
	articles        ArticleRepository
	httpClient      *http.Client
	healthFinderURL string
	wikipediaURL    string
}

func NewArticleFetcher(articles ArticleRepository) *ArticleFetcher {
	return &ArticleFetcher{
		articles:        articles,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		healthFinderURL: defaultHealthFinderURL,
		wikipediaURL:    defaultWikipediaURL,
	}
}

// Start runs FetchAll on the given interval until the context is
// cancelled. The first run happens immediately.
func (fetcher *ArticleFetcher) Start(ctx context.Context, interval time.Duration) {
	go func() {
		fetcher.FetchAll(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fetcher.FetchAll(ctx)
			}
		}
	}()
}

// FetchAll runs both providers. Provider errors are logged per keyword or
// batch and never abort the remaining work.
func (fetcher *ArticleFetcher) FetchAll(ctx context.Context) {
	fetcher.fetchHealthFinder(ctx)
	fetcher.fetchWikipedia(ctx)
}

type healthFinderResponse struct {
	Result struct {
		Resources struct {
			Resource []struct {
				Title             string `json:"Title"`
				AccessibleVersion string `json:"AccessibleVersion"`
				ImageURL          string `json:"ImageUrl"`
				Sections          struct {
					Section []struct {
						Content string `json:"Content"`
					} `json:"Section"`
				} `json:"Sections"`
			} `json:"Resource"`
		} `json:"Resources"`
	} `json:"Result"`
}

func (fetcher *ArticleFetcher) fetchHealthFinder(ctx context.Context) {
	for _, keyword := range articleKeywords {
		if ctx.Err() != nil {
			return
		}

		query := url.Values{}
		query.Set("lang", "en")
		query.Set("keyword", keyword)

		var decoded healthFinderResponse
		if err := fetcher.getJSON(ctx, fetcher.healthFinderURL+"?"+query.Encode(), &decoded); err != nil {
			log.Printf("article fetch: healthfinder %q: %v", keyword, err)
			continue
		}

		for _, item := range decoded.Result.Resources.Resource {
			title := truncate(strings.TrimSpace(item.Title), articleFieldLimit)
			if title == "" {
				continue
			}

			summary := ""
			if len(item.Sections.Section) > 0 {
				summary = stripHTML(item.Sections.Section[0].Content)
			}

			article := models.Article{
				Title:       title,
				Source:      models.ArticleSourceHealthFinder,
				URL:         truncate(item.AccessibleVersion, articleFieldLimit),
				Content:     summary,
				ImageURL:    truncate(item.ImageURL, articleFieldLimit),
				Keyword:     keyword,
				PublishedAt: time.Now(),
			}
			if err := fetcher.storeArticle(&article, classifyCategory(title, summary)); err != nil {
				log.Printf("article fetch: store %q: %v", title, err)
			}
		}
	}
}

type wikipediaResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			Extract   string `json:"extract"`
			Thumbnail struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

func (fetcher *ArticleFetcher) fetchWikipedia(ctx context.Context) {
	for offset := 0; offset < len(articleKeywords); offset += wikipediaBatchSize {
		if ctx.Err() != nil {
			return
		}

		limit := offset + wikipediaBatchSize
		if limit > len(articleKeywords) {
			limit = len(articleKeywords)
		}
		batch := articleKeywords[offset:limit]

		query := url.Values{}
		query.Set("action", "query")
		query.Set("format", "json")
		query.Set("prop", "extracts|pageimages")
		query.Set("exintro", "true")
		query.Set("piprop", "thumbnail")
		query.Set("titles", strings.Join(batch, "|"))

		var decoded wikipediaResponse
		if err := fetcher.getJSON(ctx, fetcher.wikipediaURL+"?"+query.Encode(), &decoded); err != nil {
			log.Printf("article fetch: wikipedia batch %d: %v", offset/wikipediaBatchSize+1, err)
			continue
		}

		for _, page := range decoded.Query.Pages {
			title := truncate(strings.TrimSpace(page.Title), articleFieldLimit)
			if title == "" {
				continue
			}

			summary := stripHTML(page.Extract)
			if summary == "" {
				summary = "No summary available."
			}
			if len(summary) > wikipediaExtractLimit {
				summary = summary[:wikipediaExtractLimit] + "..."
			}

			article := models.Article{
				Title:       title,
				Source:      models.ArticleSourceWikipedia,
				URL:         truncate("https://en.wikipedia.org/wiki/"+strings.ReplaceAll(title, " ", "_"), articleFieldLimit),
				Content:     summary,
				ImageURL:    truncate(page.Thumbnail.Source, articleFieldLimit),
				Keyword:     matchedKeyword(batch, title),
				PublishedAt: time.Now(),
			}
			if err := fetcher.storeArticle(&article, educationCategoryName); err != nil {
				log.Printf("article fetch: store %q: %v", title, err)
			}
		}
	}
}

func (fetcher *ArticleFetcher) storeArticle(article *models.Article, categoryName string) error {
	exists, err := fetcher.articles.ExistsByTitleAndSource(article.Title, article.Source)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	category, err := fetcher.articles.FindOrCreateCategory(categoryName)
	if err != nil {
		return err
	}
	article.CategoryID = category.ID
	return fetcher.articles.Create(article)
}

func (fetcher *ArticleFetcher) getJSON(ctx context.Context, requestURL string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	response, err := fetcher.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", response.StatusCode)
	}
	return json.NewDecoder(response.Body).Decode(target)
}

func classifyCategory(title string, summary string) string {
	haystack := strings.ToLower(title + " " + summary)
	for _, rule := range categoryRules {
		for _, term := range rule.Terms {
			if strings.Contains(haystack, term) {
				return rule.Name
			}
		}
	}
	return defaultCategoryName
}

func matchedKeyword(batch []string, title string) string {
	for _, keyword := range batch {
		if strings.EqualFold(keyword, title) {
			return keyword
		}
	}
	if len(batch) > 0 {
		return batch[0]
	}
	return ""
}

func stripHTML(raw string) string {
	withoutTags := htmlTagPattern.ReplaceAllString(raw, " ")
	unescaped := html.UnescapeString(withoutTags)
	return strings.Join(strings.Fields(unescaped), " ")
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}
