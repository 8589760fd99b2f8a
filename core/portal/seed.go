package portal

import (
	_ "embed"
	"fmt"

	"github.com/asaidimu/go-portal/core/schema"
	"github.com/asaidimu/go-portal/utils"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed is the demo data set shown on every screen.
type Seed struct {
	Employees     []Employee        `yaml:"employees"`
	News          []NewsItem        `yaml:"news"`
	AdminNews     []NewsItem        `yaml:"adminNews"`
	Surveys       []Survey          `yaml:"surveys"`
	AdminSurveys  []Survey          `yaml:"adminSurveys"`
	Notifications []Notification    `yaml:"notifications"`
	Campaigns     []Campaign        `yaml:"campaigns"`
	Transactions  []Transaction     `yaml:"transactions"`
	Documents     []LibraryDocument `yaml:"documents"`
	Tiers         []TierConfig      `yaml:"tiers"`
}

// LoadSeed decodes the embedded seed data.
func LoadSeed() (*Seed, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed decodes seed data in the embedded format.
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &s, nil
}

// Collections returns the seed records as documents, keyed by the name of the
// view that lists them.
func (s *Seed) Collections() (map[string][]schema.Document, error) {
	sources := []struct {
		view    string
		convert func() ([]schema.Document, error)
	}{
		{ViewEmployees, func() ([]schema.Document, error) { return utils.StructsToMaps(s.Employees) }},
		{ViewNewsFeed, func() ([]schema.Document, error) { return utils.StructsToMaps(s.News) }},
		{ViewAdminNews, func() ([]schema.Document, error) { return utils.StructsToMaps(s.AdminNews) }},
		{ViewSurveys, func() ([]schema.Document, error) { return utils.StructsToMaps(s.Surveys) }},
		{ViewAdminSurveys, func() ([]schema.Document, error) { return utils.StructsToMaps(s.AdminSurveys) }},
		{ViewNotifications, func() ([]schema.Document, error) { return utils.StructsToMaps(s.Notifications) }},
		{ViewCampaigns, func() ([]schema.Document, error) { return utils.StructsToMaps(s.Campaigns) }},
		{ViewTransactions, func() ([]schema.Document, error) { return utils.StructsToMaps(s.Transactions) }},
		{ViewDocuments, func() ([]schema.Document, error) { return utils.StructsToMaps(s.Documents) }},
	}

	out := make(map[string][]schema.Document, len(sources))
	for _, src := range sources {
		docs, err := src.convert()
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", src.view, err)
		}
		out[src.view] = docs
	}
	return out, nil
}
