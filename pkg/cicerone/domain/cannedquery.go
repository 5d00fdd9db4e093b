package domain

import "fmt"

// Topic one of the fixed follow-up questions which can be asked about an identified place.
type Topic string

const (
	TopicHotels       = Topic("hotels")
	TopicViewpoints   = Topic("viewpoints")
	TopicAttractions  = Topic("attractions")
	TopicSignificance = Topic("significance")
	TopicArchitecture = Topic("architecture")
	TopicFacts        = Topic("facts")
	TopicRestrictions = Topic("restrictions")
)

// TopicGroup how topics are grouped in menus.
type TopicGroup string

const (
	TopicGroupNearby     = TopicGroup("Nearby Information")
	TopicGroupHistorical = TopicGroup("Historical Details")
	TopicGroupVisitor    = TopicGroup("Visitor Information")
)

// CannedQuery describes a topic: its label in menus and the template of the prompt (name, then location).
type CannedQuery struct {
	Topic    Topic
	Title    string
	Group    TopicGroup
	template string
}

var cannedQueries = []CannedQuery{
	{Topic: TopicHotels, Title: "Hotels Nearby", Group: TopicGroupNearby, template: "What are some hotels near %s at %s?"},
	{Topic: TopicViewpoints, Title: "Viewpoints", Group: TopicGroupNearby, template: "What are some good viewpoints of %s at %s?"},
	{Topic: TopicAttractions, Title: "Nearby Attractions", Group: TopicGroupNearby, template: "What are some nearby attractions near %s at %s?"},
	{Topic: TopicSignificance, Title: "Significance", Group: TopicGroupHistorical, template: "What is the historical significance of %s at %s?"},
	{Topic: TopicArchitecture, Title: "Architectural Features", Group: TopicGroupHistorical, template: "What are the notable architectural features of %s at %s?"},
	{Topic: TopicFacts, Title: "Interesting Facts", Group: TopicGroupHistorical, template: "What are some interesting facts about %s at %s?"},
	{Topic: TopicRestrictions, Title: "Restrictions", Group: TopicGroupVisitor, template: "What are restrictions at %s at %s?"},
}

// CannedQueries all the topics, in menu order.
func CannedQueries() []CannedQuery {
	result := make([]CannedQuery, len(cannedQueries))
	copy(result, cannedQueries)
	return result
}

// FindCannedQuery returns ErrUnknownTopic for topics not in CannedQueries.
func FindCannedQuery(topic Topic) (CannedQuery, error) {
	for _, query := range cannedQueries {
		if query.Topic == topic {
			return query, nil
		}
	}
	return CannedQuery{}, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
}

// Prompt interpolates the place into the topic's template.
func (c CannedQuery) Prompt(identity PlaceIdentity) string {
	return fmt.Sprintf(c.template, identity.Name, identity.Location)
}
