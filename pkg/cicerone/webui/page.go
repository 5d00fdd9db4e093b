package webui

import (
	"embed"
	"html/template"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const pageTemplateName = "index.html"

func newPageTemplate() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// pageData everything the single page of the UI shows.
type pageData struct {
	HasCredential   bool
	ResearchEnabled bool
	State           string
	Identity        *domain.PlaceIdentity
	// ImageURL a data URL of the last analyzed image, rendered from memory
	ImageURL    template.URL
	Sections    []domain.Section
	Warning     string
	Error       string
	TopicGroups []topicGroup
}

type topicGroup struct {
	Name    string
	Queries []domain.CannedQuery
}

func groupTopics(queries []domain.CannedQuery) []topicGroup {
	var groups []topicGroup
	for _, query := range queries {
		if len(groups) == 0 || groups[len(groups)-1].Name != string(query.Group) {
			groups = append(groups, topicGroup{Name: string(query.Group)})
		}
		last := &groups[len(groups)-1]
		last.Queries = append(last.Queries, query)
	}
	return groups
}

func newPageData(snapshot domain.SessionSnapshot, researchEnabled bool, queries []domain.CannedQuery) pageData {
	data := pageData{
		HasCredential:   snapshot.HasCredential,
		ResearchEnabled: researchEnabled,
		State:           snapshot.State.String(),
		Identity:        snapshot.Identity,
		TopicGroups:     groupTopics(queries),
	}
	if snapshot.Image != nil {
		data.ImageURL = template.URL(snapshot.Image.DataURL()) // a base64 data URL built by us, safe for <img src>
	}
	return data
}
