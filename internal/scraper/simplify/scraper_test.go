package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/job-track/internal/scraper"
)

const fixtureTable = `
<table>
<tr><th>Company</th><th>Role</th><th>Location</th><th>Application</th><th>Age</th></tr>
<tr>
<td><a href="https://acme.example.com">Acme</a></td>
<td>New Grad SWE</td>
<td>NYC</td>
<td><a href="https://acme.example.com/apply/1">Apply</a></td>
<td>5d</td>
</tr>
<tr>
<td>↳</td>
<td>Backend Engineer 🛂</td>
<td>Remote in USA</td>
<td>🔒</td>
<td>5d</td>
</tr>
<tr>
<td>🔥 <a href="https://globex.example.com">Globex</a></td>
<td>Software Engineer I 🎓</td>
<td><details><summary>3 locations</summary>NYC Austin Seattle</details></td>
<td><a href="https://simplify.jobs/p/abc">Simplify</a> <a href="https://globex.example.com/jobs/2">Apply</a></td>
<td>2mo</td>
</tr>
<tr><td>broken row</td></tr>
</table>
`

func TestParse_ContinuationAndLockedRows(t *testing.T) {
	cfg := scraper.SearchConfig{MaxResults: 50}
	jobs, err := Parse(fixtureTable, cfg, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 2, "locked continuation row is excluded by default")

	assert.Equal(t, "New Grad SWE", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "https://acme.example.com/apply/1", jobs[0].ApplyURL)
	assert.True(t, jobs[0].NewGrad)
	assert.True(t, jobs[0].HasTag("new-grad"))

	//direct employer link wins over the aggregator redirect
	assert.Equal(t, "https://globex.example.com/jobs/2", jobs[1].ApplyURL)
	assert.True(t, jobs[1].HasTag("notable-employer"))
	assert.True(t, jobs[1].HasTag("advanced-degree"))
}

func TestParse_IncludeInactive(t *testing.T) {
	cfg := scraper.SearchConfig{MaxResults: 50, IncludeInactive: true}
	jobs, err := Parse(fixtureTable, cfg, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	locked := jobs[1]
	assert.Equal(t, "Acme", locked.Company, "continuation row inherits prior company")
	assert.Equal(t, "Backend Engineer", locked.Title)
	assert.Empty(t, locked.ApplyURL)
	assert.True(t, locked.HasTag("closed"))
	assert.True(t, locked.HasTag("no-sponsorship"))
}

func TestParse_StalenessCutoff(t *testing.T) {
	//"2mo" is approximated as 60 days
	jobs, err := Parse(fixtureTable, scraper.SearchConfig{MaxResults: 50, StalenessDays: 30}, nil)
	require.NoError(t, err)
	for _, j := range jobs {
		assert.NotEqual(t, "Globex", j.Company)
	}

	jobs, err = Parse(fixtureTable, scraper.SearchConfig{MaxResults: 50, StalenessDays: 90}, nil)
	require.NoError(t, err)
	companies := make([]string, 0, len(jobs))
	for _, j := range jobs {
		companies = append(companies, j.Company)
	}
	assert.Contains(t, companies, "Globex")
}

func TestParse_MaxResults(t *testing.T) {
	jobs, err := Parse(fixtureTable, scraper.SearchConfig{MaxResults: 1}, nil)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestParse_LocationFilter(t *testing.T) {
	jobs, err := Parse(fixtureTable, scraper.SearchConfig{MaxResults: 50, Location: "austin"}, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Globex", jobs[0].Company)
	assert.Equal(t, "3 locations NYC Austin Seattle", jobs[0].Location)
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in    string
		days  int
		known bool
	}{
		{"5d", 5, true},
		{"2mo", 60, true},
		{" 1MO ", 30, true},
		{"fresh", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		days, known := ParseAge(tt.in)
		assert.Equal(t, tt.known, known, tt.in)
		assert.Equal(t, tt.days, days, tt.in)
	}
}

func TestSelectCategories(t *testing.T) {
	content := "intro\n## 💻 Software Engineering New Grad Roles\n<table id='swe'></table>\n## 📱 Product Management New Grad Roles\n<table id='pm'></table>\n"

	swe := selectCategories(content, []string{"software-engineering"})
	assert.Contains(t, swe, "id='swe'")
	assert.NotContains(t, swe, "id='pm'")

	//unknown categories fall back to the whole document
	all := selectCategories(content, []string{"underwater-basketweaving"})
	assert.Equal(t, content, all)
}
