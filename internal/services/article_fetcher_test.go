package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blossomhealth/blossom/internal/models"
)

type fakeArticleRepo struct {
	stored     []models.Article
	categories map[string]uint
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{categories: make(map[string]uint)}
}

func (repo *fakeArticleRepo) ExistsByTitleAndSource(title string, source string) (bool, error) {
	for _, article := range repo.stored {
		if article.Title == title && article.Source == source {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeArticleRepo) Create(article *models.Article) error {
	repo.stored = append(repo.stored, *article)
	return nil
}

func (repo *fakeArticleRepo) List(string, string) ([]models.Article, error) {
	return repo.stored, nil
}

func (repo *fakeArticleRepo) ListCategories() ([]models.Category, error) {
	return nil, nil
}

func (repo *fakeArticleRepo) FindOrCreateCategory(name string) (models.Category, error) {
	if id, ok := repo.categories[name]; ok {
		return models.Category{ID: id, Name: name}, nil
	}
	id := uint(len(repo.categories) + 1)
	repo.categories[name] = id
	return models.Category{ID: id, Name: name}, nil
}

const healthFinderFixture = `{
	"Result": {
		"Resources": {
			"Resource": [
				{
					"Title": "Get Screened for Breast Cancer",
					"AccessibleVersion": "https://health.gov/example",
					"ImageUrl": "https://health.gov/example.png",
					"Sections": {
						"Section": [{"Content": "<p>Screening finds breast cancer early.</p>"}]
					}
				}
			]
		}
	}
}`

const wikipediaFixture = `{
	"query": {
		"pages": {
			"1": {
				"title": "Menopause",
				"extract": "<p>Menopause is the natural end of menstrual cycles.</p>",
				"thumbnail": {"source": "https://upload.wikimedia.org/example.jpg"}
			}
		}
	}
}`

func TestFetchHealthFinder_StoresClassifiedArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("keyword") == "" {
			t.Errorf("expected a keyword query parameter")
		}
		w.Write([]byte(healthFinderFixture))
	}))
	defer server.Close()

	repo := newFakeArticleRepo()
	fetcher := NewArticleFetcher(repo)
	fetcher.healthFinderURL = server.URL

	fetcher.fetchHealthFinder(context.Background())

	if len(repo.stored) != 1 {
		t.Fatalf("expected 1 stored article, the rest deduplicated, got %d", len(repo.stored))
	}
	article := repo.stored[0]
	if article.Source != models.ArticleSourceHealthFinder {
		t.Fatalf("expected source %q, got %q", models.ArticleSourceHealthFinder, article.Source)
	}
	if article.Content != "Screening finds breast cancer early." {
		t.Fatalf("expected stripped summary, got %q", article.Content)
	}
	if got := repo.categoryNameFor(article.CategoryID); got != "Physical Health" {
		t.Fatalf("expected category Physical Health, got %q", got)
	}
}

func TestFetchWikipedia_StoresEducationArticles(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(wikipediaFixture))
	}))
	defer server.Close()

	repo := newFakeArticleRepo()
	fetcher := NewArticleFetcher(repo)
	fetcher.wikipediaURL = server.URL

	fetcher.fetchWikipedia(context.Background())

	if requests != 4 {
		t.Fatalf("expected 40 keywords in 4 batches of 10, got %d requests", requests)
	}
	if len(repo.stored) != 1 {
		t.Fatalf("expected repeated pages deduplicated down to 1 article, got %d", len(repo.stored))
	}
	article := repo.stored[0]
	if article.Source != models.ArticleSourceWikipedia {
		t.Fatalf("expected source %q, got %q", models.ArticleSourceWikipedia, article.Source)
	}
	if article.URL != "https://en.wikipedia.org/wiki/Menopause" {
		t.Fatalf("expected a canonical wiki URL, got %q", article.URL)
	}
	if got := repo.categoryNameFor(article.CategoryID); got != "Education" {
		t.Fatalf("expected category Education, got %q", got)
	}
}

func TestFetchAll_ProviderErrorDoesNotAbort(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(wikipediaFixture))
	}))
	defer working.Close()

	repo := newFakeArticleRepo()
	fetcher := NewArticleFetcher(repo)
	fetcher.healthFinderURL = broken.URL
	fetcher.wikipediaURL = working.URL

	fetcher.FetchAll(context.Background())

	if len(repo.stored) != 1 {
		t.Fatalf("expected the working provider to still ingest, got %d articles", len(repo.stored))
	}
}

func TestClassifyCategory(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		title   string
		summary string
		want    string
	}{
		{name: "physical", title: "Pregnancy nutrition basics", want: "Physical Health"},
		{name: "mental", title: "Managing anxiety", want: "Mental Health"},
		{name: "emotional", title: "Daily mindfulness", want: "Emotional Well-being"},
		{name: "nutrition", title: "Hydration tips", want: "Nutrition & Wellness"},
		{name: "summary match", title: "Weekly digest", summary: "stress relief ideas", want: "Mental Health"},
		{name: "no match", title: "Local news", want: "General Health"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			if got := classifyCategory(testCase.title, testCase.summary); got != testCase.want {
				t.Fatalf("expected category %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	got := stripHTML("<p>Iron &amp; calcium</p>\n<b>matter</b>")
	if got != "Iron & calcium matter" {
		t.Fatalf("expected stripped text, got %q", got)
	}
}

func (repo *fakeArticleRepo) categoryNameFor(id uint) string {
	for name, categoryID := range repo.categories {
		if categoryID == id {
			return name
		}
	}
	return ""
}
