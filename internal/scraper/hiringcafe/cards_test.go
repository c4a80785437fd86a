package hiringcafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/job-track/internal/scraper"
)

func TestParseCard_FullCard(t *testing.T) {
	c := card{
		URL:      "/viewjob/abc",
		LinkText: "Software Engineer, New Grad",
		CardText: "Software Engineer, New Grad\nHooli: we make compression middle-out\n$120K/yr - $150K/yr\n0+ YOE\nRemote\nNew York, NY, United States\nSave Search\nView All",
	}

	job, ok := parseCard(c, "https://hiring.cafe/search?q=swe")
	require.True(t, ok)

	assert.Equal(t, "Software Engineer, New Grad", job.Title)
	assert.Equal(t, "Hooli", job.Company)
	assert.Equal(t, "New York, NY, United States", job.Location)
	assert.Contains(t, job.Description, "Salary: $120K/yr - $150K/yr")
	assert.Contains(t, job.Description, "Experience: 0+ YOE")
	assert.Contains(t, job.Description, "Work Type: Remote")
	assert.Equal(t, "https://hiring.cafe/search?q=swe", job.SourceURL)
	assert.True(t, job.NewGrad)
	assert.True(t, job.HasTag("new-grad"))
	assert.True(t, job.HasTag("remote"))
}

func TestParseCard_DenylistOnly(t *testing.T) {
	c := card{
		URL:      "/viewjob/nav",
		LinkText: "View All",
		CardText: "Save Search\nClear Filters\nView All",
	}
	_, ok := parseCard(c, "https://hiring.cafe/search")
	assert.False(t, ok, "cards with no substantive lines are dropped")
}

func TestParseCard_TitleFromLinkText(t *testing.T) {
	c := card{
		URL:      "/viewjob/xyz",
		LinkText: "Backend Engineer",
		CardText: "$95K/yr\nRemote",
	}
	job, ok := parseCard(c, "https://hiring.cafe/search")
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", job.Title, "link text supplies the title when card lines are all metadata")
	assert.Equal(t, "Unknown Company", job.Company)
}

func TestParseCard_MatcherOrderTieBreak(t *testing.T) {
	//"Remote, United States" matches both work-mode-qualified location and
	//salary-free metadata; the fixed pass order assigns it to location
	c := card{
		URL:      "/viewjob/tie",
		LinkText: "Data Engineer",
		CardText: "Data Engineer\nRemote, United States\n$100K/yr",
	}
	job, ok := parseCard(c, "https://hiring.cafe/search")
	require.True(t, ok)
	assert.Equal(t, "Remote, United States", job.Location)
	assert.Contains(t, job.Description, "Salary: $100K/yr")
}

func TestParseCard_FirstMatchPerFieldWins(t *testing.T) {
	c := card{
		URL:      "/viewjob/two-salaries",
		LinkText: "Platform Engineer",
		CardText: "Platform Engineer\n$100K/yr\n$200K/yr",
	}
	job, ok := parseCard(c, "https://hiring.cafe/search")
	require.True(t, ok)
	assert.Contains(t, job.Description, "Salary: $100K/yr")
	assert.NotContains(t, job.Description, "$200K/yr")
}

func TestFilterLines(t *testing.T) {
	lines := filterLines("  Software Engineer  \n\nRelevance\nSave Search\nAustin, TX\nx\n")
	assert.Equal(t, []string{"Software Engineer", "Austin, TX"}, lines)
}

func TestBuildSearchURL(t *testing.T) {
	cfg := scraper.SearchConfig{
		Query:            "software engineer",
		Department:       "software-engineering",
		ExperienceLevels: []string{"entry-level", "internship"},
	}
	url := buildSearchURL(cfg)
	assert.Contains(t, url, "q=software+engineer")
	assert.Contains(t, url, "departments=software-engineering")
	assert.Contains(t, url, "experience=entry-level%2Cinternship")

	assert.Equal(t, "https://hiring.cafe/search", buildSearchURL(scraper.SearchConfig{}))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://hiring.cafe/viewjob/abc", absoluteURL("/viewjob/abc"))
	assert.Equal(t, "https://other.example.com/job", absoluteURL("https://other.example.com/job"))
}
