package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/service"
	"github.com/harborline/caseflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newDocumentService(t *testing.T) (*service.DocumentService, *gorm.DB, *bus.Bus) {
	db := testutil.SetupTestDB(t)
	eventBus := bus.New(zap.NewNop())

	svc := service.NewDocumentService(
		repository.NewCaseDocumentRepository(db),
		repository.NewDocumentTemplateRepository(db),
		repository.NewCaseRepository(db),
		nil,
		eventBus,
		zap.NewNop(),
	)
	return svc, db, eventBus
}

func seedCase(t *testing.T, db *gorm.DB) *domain.Case {
	quantity := 2
	c := &domain.Case{
		CaseNumber:        "CASE-2026-00042",
		CaseType:          domain.CaseTypeBooking,
		Direction:         domain.DirectionExport,
		Status:            domain.CaseStatusActive,
		CargoDescription:  "Frozen salmon",
		ContainerType:     "40ft Reefer",
		ContainerQuantity: &quantity,
		VesselName:        "MV Northern Light",
		Carrier:           "Maersk",
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestRenderPlaceholders(t *testing.T) {
	quantity := 3
	weight := 18500.0
	pickup := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	c := &domain.Case{
		CaseNumber:        "CASE-2026-00007",
		CargoDescription:  "Machine parts",
		ContainerType:     "20ft Standard",
		ContainerQuantity: &quantity,
		WeightKg:          &weight,
		VesselName:        "MV Polar Star",
		PickupDate:        &pickup,
		Customer:          &domain.Customer{CompanyName: "Acme Shipping"},
		LoadingPort:       &domain.Port{Name: "Rotterdam"},
	}

	t.Run("substitutes known placeholders", func(t *testing.T) {
		out := service.RenderPlaceholders(
			"{{case_number}} / {{customer_name}} / {{loading_port}} / {{vessel_name}}", c)
		assert.Equal(t, "CASE-2026-00007 / Acme Shipping / Rotterdam / MV Polar Star", out)
	})

	t.Run("formats numbers and dates", func(t *testing.T) {
		out := service.RenderPlaceholders("{{container_quantity}} x {{container_type}}, {{weight_kg}} kg, pickup {{pickup_date}}", c)
		assert.Equal(t, "3 x 20ft Standard, 18500 kg, pickup 2026-09-15", out)
	})

	t.Run("nil relations render empty", func(t *testing.T) {
		out := service.RenderPlaceholders("POD: {{discharge_port}}.", c)
		assert.Equal(t, "POD: .", out)
	})

	t.Run("unknown placeholders stay untouched", func(t *testing.T) {
		out := service.RenderPlaceholders("{{case_number}} {{no_such_field}}", c)
		assert.Equal(t, "CASE-2026-00007 {{no_such_field}}", out)
	})

	t.Run("current date", func(t *testing.T) {
		out := service.RenderPlaceholders("{{current_date}}", c)
		assert.Equal(t, time.Now().Format("2006-01-02"), out)
	})
}

func TestDocumentService_CreateFromTemplate(t *testing.T) {
	svc, db, eventBus := newDocumentService(t)
	ctx := context.Background()
	c := seedCase(t, db)

	tmpl := &domain.DocumentTemplate{
		Name:         "Booking Confirmation",
		DocumentType: "booking_confirmation",
		Content:      "<h1>Booking {{case_number}}</h1><p>{{cargo_description}}</p>",
	}
	require.NoError(t, db.Create(tmpl).Error)

	var events []bus.DocumentCreated
	eventBus.SubscribeDocumentCreated(func(ev bus.DocumentCreated) { events = append(events, ev) })

	doc, err := svc.Create(ctx, c.ID, &domain.CreateDocumentRequest{
		TemplateID: &tmpl.ID,
		Name:       "Booking Confirmation CASE-2026-00042",
	})
	require.NoError(t, err)

	assert.Equal(t, "booking_confirmation", doc.DocumentType)
	assert.Equal(t, "<h1>Booking CASE-2026-00042</h1><p>Frozen salmon</p>", doc.HTMLContent)

	require.Len(t, events, 1)
	assert.Equal(t, c.ID, events[0].CaseID)
}

func TestDocumentService_CreateFromRawContent(t *testing.T) {
	svc, db, _ := newDocumentService(t)
	ctx := context.Background()
	c := seedCase(t, db)

	doc, err := svc.Create(ctx, c.ID, &domain.CreateDocumentRequest{
		Name:    "Ad-hoc note",
		Content: "<p>Carrier: {{carrier}}</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "general", doc.DocumentType)
	assert.Equal(t, "<p>Carrier: Maersk</p>", doc.HTMLContent)
}

func TestDocumentService_CreateWithoutContent(t *testing.T) {
	svc, db, _ := newDocumentService(t)
	c := seedCase(t, db)

	_, err := svc.Create(context.Background(), c.ID, &domain.CreateDocumentRequest{
		Name: "Empty",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDocumentService_RenderedContentIsFrozen(t *testing.T) {
	svc, db, _ := newDocumentService(t)
	ctx := context.Background()
	c := seedCase(t, db)

	doc, err := svc.Create(ctx, c.ID, &domain.CreateDocumentRequest{
		Name:    "Snapshot",
		Content: "Vessel: {{vessel_name}}",
	})
	require.NoError(t, err)
	require.Equal(t, "Vessel: MV Northern Light", doc.HTMLContent)

	// Changing the case afterwards must not affect the stored document
	require.NoError(t, db.Model(&domain.Case{}).Where("id = ?", c.ID).Update("vessel_name", "MV Evening Star").Error)

	_, content, err := svc.Download(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vessel: MV Northern Light", content)
}

func TestDocumentService_Download(t *testing.T) {
	svc, db, _ := newDocumentService(t)
	ctx := context.Background()
	c := seedCase(t, db)

	doc, err := svc.Create(ctx, c.ID, &domain.CreateDocumentRequest{
		Name:    "Booking Confirmation",
		Content: "<p>ok</p>",
	})
	require.NoError(t, err)

	filename, content, err := svc.Download(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Booking Confirmation.html", filename)
	assert.Equal(t, "<p>ok</p>", content)

	_, _, err = svc.Download(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDocumentService_Delete(t *testing.T) {
	svc, db, _ := newDocumentService(t)
	ctx := context.Background()
	c := seedCase(t, db)

	doc, err := svc.Create(ctx, c.ID, &domain.CreateDocumentRequest{
		Name:    "Removable",
		Content: "<p>x</p>",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, doc.ID))

	docs, err := svc.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
