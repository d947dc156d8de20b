package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dshills/domainlens-mcp/internal/config"
	"github.com/dshills/domainlens-mcp/internal/enricher"
	"github.com/dshills/domainlens-mcp/internal/frontend"
	"github.com/dshills/domainlens-mcp/internal/storage"
	"github.com/dshills/domainlens-mcp/pkg/domain"
)

// PipelineTestSuite runs the full analysis pipeline against fixture
// descriptors: load, build, enrich, persist, query.
type PipelineTestSuite struct {
	suite.Suite
	ctx         context.Context
	fixturesDir string
	store       *storage.SQLiteStorage
}

func (s *PipelineTestSuite) SetupSuite() {
	s.ctx = context.Background()

	wd, err := os.Getwd()
	s.Require().NoError(err)
	s.fixturesDir = filepath.Join(filepath.Dir(wd), "testdata", "fixtures")
}

func (s *PipelineTestSuite) SetupTest() {
	store, err := storage.NewSQLiteStorage(":memory:")
	s.Require().NoError(err)
	s.store = store
}

func (s *PipelineTestSuite) TearDownTest() {
	_ = s.store.Close()
}

func (s *PipelineTestSuite) fixture(name string) string {
	return filepath.Join(s.fixturesDir, name)
}

func (s *PipelineTestSuite) analyze(configPath string) (*domain.Model, *enricher.Report, *storage.Analysis) {
	desc, err := frontend.LoadDescriptor(s.fixture("ordering.yaml"))
	s.Require().NoError(err)

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
		s.Require().NoError(err)
	}

	model, ports, err := frontend.NewBuilder().Build(desc)
	s.Require().NoError(err)

	report, err := enricher.New(cfg, nil).Enrich(s.ctx, model, ports)
	s.Require().NoError(err)

	analysis, err := enricher.Persist(s.ctx, s.store, enricher.PersistOptions{
		ModelName:       desc.Model.Name,
		DescriptorPath:  s.fixture("ordering.yaml"),
		AnalyzerVersion: "test",
	}, model, report)
	s.Require().NoError(err)

	return model, report, analysis
}

func (s *PipelineTestSuite) TestAnalyzeWithConfig() {
	model, report, analysis := s.analyze(s.fixture("ordering-config.yaml"))

	s.Equal(8, report.Stats.TypesExamined)
	s.Equal(3, report.Stats.AggregateRoots)
	s.Equal(6, report.Stats.Relationships)
	s.Equal(1, report.Stats.Diagnostics)

	// @AggregateRoot annotation wins for Order.
	order, ok := model.FindType("com.example.order.Order")
	s.Require().True(ok)
	s.Equal(domain.TypeKindAggregateRoot, order.Kind)

	// Weak JPA marker plus repository port upgrades Customer.
	customer, ok := model.FindType("com.example.customer.Customer")
	s.Require().True(ok)
	s.Equal(domain.TypeKindAggregateRoot, customer.Kind)

	// Declared in configuration.
	product, ok := model.FindType("com.example.catalog.Product")
	s.Require().True(ok)
	s.Equal(domain.TypeKindAggregateRoot, product.Kind)

	// Pre-classified kinds survive enrichment untouched.
	money, ok := model.FindType("com.example.shared.Money")
	s.Require().True(ok)
	s.Equal(domain.TypeKindValueObject, money.Kind)

	s.Equal(8, analysis.TypesCount)
	s.Equal(3, analysis.AggregateCount)
}

func (s *PipelineTestSuite) TestRelationshipClassification() {
	model, _, _ := s.analyze(s.fixture("ordering-config.yaml"))

	order, ok := model.FindType("com.example.order.Order")
	s.Require().True(ok)

	byName := make(map[string]*domain.DomainProperty)
	for _, p := range order.Properties {
		byName[p.Name] = p
	}

	// ID-suffix heuristic resolves the foreign aggregate.
	customerID := byName["customerId"]
	s.Require().NotNil(customerID.Relationship)
	s.Equal(domain.RelationshipManyToOne, customerID.Relationship.Kind)
	s.Equal("com.example.customer.Customer", customerID.Relationship.TargetQualifiedName)
	s.True(customerID.Relationship.InterAggregate)

	// Collections stay unclassified until element annotations are exported.
	s.Nil(byName["lines"].Relationship)

	// Embedded value objects are intra-aggregate one-to-one.
	total := byName["total"]
	s.Require().NotNil(total.Relationship)
	s.Equal(domain.RelationshipOneToOne, total.Relationship.Kind)
	s.False(total.Relationship.InterAggregate)

	// Configuration overrides property classification.
	line, ok := model.FindType("com.example.order.OrderLine")
	s.Require().True(ok)
	product := line.Properties[0]
	s.Require().NotNil(product.Relationship)
	s.Equal(domain.RelationshipManyToOne, product.Relationship.Kind)
	s.Equal("com.example.catalog.Product", product.Relationship.TargetQualifiedName)
	s.True(product.Relationship.InterAggregate)
}

func (s *PipelineTestSuite) TestDirectAggregateReferenceDiagnostic() {
	_, report, analysis := s.analyze("")

	s.Require().Len(report.Diagnostics, 1)
	diag := report.Diagnostics[0]
	s.Equal(domain.CodeDirectAggregateReference, diag.Code)
	s.Equal("com.example.billing.Invoice", diag.OwnerType)
	s.Equal("customer", diag.Property)
	s.Equal("com.example.customer.Customer", diag.TargetType)

	stored, err := s.store.ListDiagnostics(s.ctx, analysis.ID)
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal(diag.Code, stored[0].Code)
	s.Equal("warning", stored[0].Severity)
}

func (s *PipelineTestSuite) TestStoredModelQueries() {
	_, _, analysis := s.analyze(s.fixture("ordering-config.yaml"))

	order, err := s.store.GetType(s.ctx, analysis.ID, "com.example.order.Order")
	s.Require().NoError(err)
	s.Equal("aggregate_root", order.Kind)
	s.Equal("explicit_annotation", order.EvidenceKind)

	props, err := s.store.ListPropertiesByType(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Len(props, 3)

	// Full-text search finds types by simple name.
	found, err := s.store.SearchTypes(s.ctx, analysis.ID, "Invoice", 5)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("com.example.billing.Invoice", found[0].QualifiedName)

	status, err := s.store.GetStatus(s.ctx, analysis.ID)
	s.Require().NoError(err)
	s.Equal(8, status.TypesCount)
	s.Equal(6, status.RelationshipsCount)
	s.True(status.Health.DatabaseAccessible)
	s.True(status.Health.FTSIndexesBuilt)
}

func (s *PipelineTestSuite) TestRerunReplacesResults() {
	_, _, first := s.analyze(s.fixture("ordering-config.yaml"))
	_, _, second := s.analyze(s.fixture("ordering-config.yaml"))

	s.Equal(first.ID, second.ID)

	status, err := s.store.GetStatus(s.ctx, second.ID)
	s.Require().NoError(err)
	s.Equal(8, status.TypesCount)
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}
