package credibility

import "github.com/veritaslabs/veritas/internal/model"

// curatedSources is the static trust table. Refreshed rarely, read-only at runtime.
var curatedSources = map[string]Source{
	// Government - India
	"pib.gov.in":   {Name: "Press Information Bureau", Type: model.SourceGovernment, Score: 100},
	"mohfw.gov.in": {Name: "Ministry of Health & Family Welfare", Type: model.SourceGovernment, Score: 100},
	"eci.gov.in":   {Name: "Election Commission of India", Type: model.SourceGovernment, Score: 100},
	"mygov.in":     {Name: "MyGov India", Type: model.SourceGovernment, Score: 95},
	"india.gov.in": {Name: "National Portal of India", Type: model.SourceGovernment, Score: 95},

	// Health authorities
	"who.int": {Name: "World Health Organization", Type: model.SourceHealthAuthority, Score: 100},
	"cdc.gov": {Name: "CDC", Type: model.SourceHealthAuthority, Score: 100},
	"nih.gov": {Name: "National Institutes of Health", Type: model.SourceHealthAuthority, Score: 100},

	// Fact-checking organizations
	"afp.com":         {Name: "AFP Fact Check", Type: model.SourceFactCheck, Score: 95},
	"factcheck.org":   {Name: "FactCheck.org", Type: model.SourceFactCheck, Score: 95},
	"snopes.com":      {Name: "Snopes", Type: model.SourceFactCheck, Score: 95},
	"altnews.in":      {Name: "Alt News", Type: model.SourceFactCheck, Score: 95},
	"boomlive.in":     {Name: "BOOM Live", Type: model.SourceFactCheck, Score: 95},
	"thequint.com":    {Name: "The Quint", Type: model.SourceFactCheck, Score: 90},
	"vishvasnews.com": {Name: "Vishvas News", Type: model.SourceFactCheck, Score: 90},
	"newschecker.in":  {Name: "Newschecker", Type: model.SourceFactCheck, Score: 90},

	// News - international
	"bbc.com":         {Name: "BBC News", Type: model.SourceNews, Score: 85},
	"bbc.co.uk":       {Name: "BBC News", Type: model.SourceNews, Score: 85},
	"reuters.com":     {Name: "Reuters", Type: model.SourceNews, Score: 85},
	"apnews.com":      {Name: "Associated Press", Type: model.SourceNews, Score: 85},
	"theguardian.com": {Name: "The Guardian", Type: model.SourceNews, Score: 85},
	"npr.org":         {Name: "NPR", Type: model.SourceNews, Score: 80},
	"nytimes.com":     {Name: "New York Times", Type: model.SourceNews, Score: 80},

	// News - India
	"thehindu.com":       {Name: "The Hindu", Type: model.SourceNews, Score: 85},
	"indianexpress.com":  {Name: "Indian Express", Type: model.SourceNews, Score: 85},
	"hindustantimes.com": {Name: "Hindustan Times", Type: model.SourceNews, Score: 80},
	"ndtv.com":           {Name: "NDTV", Type: model.SourceNews, Score: 80},
	"timesofindia.com":   {Name: "Times of India", Type: model.SourceNews, Score: 80},
	"livemint.com":       {Name: "Livemint", Type: model.SourceNews, Score: 75},
	"scroll.in":          {Name: "Scroll.in", Type: model.SourceNews, Score: 75},
	"thewire.in":         {Name: "The Wire", Type: model.SourceNews, Score: 75},
	"news18.com":         {Name: "News18", Type: model.SourceNews, Score: 70},

	// Reference
	"wikipedia.org": {Name: "Wikipedia", Type: model.SourceOther, Score: 70},
}
