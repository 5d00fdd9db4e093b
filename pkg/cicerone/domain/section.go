package domain

const (
	SectionImageAnalysis    = "Image Analysis"
	SectionResearchFindings = "Research Findings"
	SectionDetailedResponse = "Detailed Response"
)

// Section a heading with an opaque text body: everything a front end renders is a list of sections.
type Section struct {
	Heading string
	Body    string
}

// Analysis the result of analyzing an uploaded image.
type Analysis struct {
	Description string
	Identity    PlaceIdentity
	Image       EncodedImage
	Sections    []Section
}

// Answer the result of a question or of a canned query. Research is empty if web search isn't used.
type Answer struct {
	Research string
	Response string
	Sections []Section
}
