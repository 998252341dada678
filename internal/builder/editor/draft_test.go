package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/openhire/pagebuilder/internal/builder/models"
	"github.com/openhire/pagebuilder/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sectionTypes = []models.SectionType{
	models.SectionHero,
	models.SectionAbout,
	models.SectionCultureVideo,
	models.SectionBenefits,
	models.SectionLifeAtCompany,
	models.SectionOpenJobs,
}

func makeCompany() *models.Company {
	return &models.Company{
		ID:   uuid.New(),
		Slug: "acme",
		Name: "Acme",
		Theme: models.Theme{
			PrimaryColor: "#112233",
			FontFamily:   "Inter",
		},
	}
}

func makeSections(t *testing.T, orders ...int) []models.Section {
	t.Helper()
	out := make([]models.Section, len(orders))
	for i, order := range orders {
		typ := sectionTypes[i%len(sectionTypes)]
		content, err := models.EmptyContent(typ)
		require.NoError(t, err)
		out[i] = models.Section{
			ID:      uuid.New(),
			Type:    typ,
			Title:   "Section",
			Content: content,
			Order:   order,
			Visible: true,
		}
	}
	return out
}

// assertDense verifies the order invariant: positions form exactly 0..N-1.
func assertDense(t *testing.T, sections []models.Section) {
	t.Helper()
	for i, s := range sections {
		assert.Equal(t, i, s.Order, "order at position %d must equal the position", i)
	}
}

func idSet(sections []models.Section) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(sections))
	for _, s := range sections {
		out[s.ID] = true
	}
	return out
}

func TestLoadSortsByOrder(t *testing.T) {
	input := makeSections(t, 2, 0, 1)
	d := NewDraft()
	d.Load(makeCompany(), input)

	got := d.Sections()
	require.Len(t, got, 3)
	assert.Equal(t, input[1].ID, got[0].ID)
	assert.Equal(t, input[2].ID, got[1].ID)
	assert.Equal(t, input[0].ID, got[2].ID)
	assertDense(t, got)
	assert.Equal(t, StateClean, d.State())
}

func TestLoadNormalizesCorruptOrders(t *testing.T) {
	// Gaps and duplicates must not be trusted; order is re-derived from
	// array position after the sort.
	input := makeSections(t, 7, 7, 3)
	d := NewDraft()
	d.Load(makeCompany(), input)
	assertDense(t, d.Sections())
}

func TestLoadIdempotent(t *testing.T) {
	d := NewDraft()
	d.Load(makeCompany(), makeSections(t, 4, 9, 1))
	once := d.Sections()

	d.Load(makeCompany(), once)
	assert.Equal(t, once, d.Sections(), "loading an already-normalized list is a fixed point")
}

func TestLoadClearsDirty(t *testing.T) {
	sections := makeSections(t, 0, 1)
	d := NewDraft()
	d.Load(makeCompany(), sections)
	d.SetTitle(sections[0].ID, "Edited")
	require.True(t, d.Dirty())

	d.Load(makeCompany(), sections)
	assert.False(t, d.Dirty(), "fresh data is never dirty")
}

func TestSetTitle(t *testing.T) {
	sections := makeSections(t, 0, 1)
	d := NewDraft()
	d.Load(makeCompany(), sections)

	d.SetTitle(sections[1].ID, "Our Story")
	got := d.Sections()
	assert.Equal(t, "Our Story", got[1].Title)
	assert.True(t, d.Dirty())
}

func TestSetTitleMissingIDIsNoOp(t *testing.T) {
	sections := makeSections(t, 0, 1)
	d := NewDraft()
	d.Load(makeCompany(), sections)

	d.SetTitle(uuid.New(), "Ghost")
	assert.Equal(t, sections[0].Title, d.Sections()[0].Title)
	assert.False(t, d.Dirty(), "a stale reference must not dirty the draft")
}

func TestSetContentMergesPatch(t *testing.T) {
	sections := makeSections(t, 0) // hero
	d := NewDraft()
	d.Load(makeCompany(), sections)

	d.SetContent(sections[0].ID, models.ContentPatch{
		Tagline: utils.Ptr("Join the team"),
		// VideoURL is not a hero field and must be dropped.
		VideoURL: utils.Ptr("https://example.com/v.mp4"),
	})

	content, ok := d.Sections()[0].Content.(models.HeroContent)
	require.True(t, ok)
	assert.Equal(t, "Join the team", content.Tagline)
	assert.True(t, d.Dirty())
}

func TestSetContentPartialMergeKeepsOtherFields(t *testing.T) {
	section := models.Section{
		ID:      uuid.New(),
		Type:    models.SectionLifeAtCompany,
		Content: models.LifeAtCompanyContent{Text: "original", Images: []string{"a.png"}},
		Visible: true,
	}
	d := NewDraft()
	d.Load(makeCompany(), []models.Section{section})

	d.SetContent(section.ID, models.ContentPatch{Text: utils.Ptr("updated")})

	content, ok := d.Sections()[0].Content.(models.LifeAtCompanyContent)
	require.True(t, ok)
	assert.Equal(t, "updated", content.Text)
	assert.Equal(t, []string{"a.png"}, content.Images, "unpatched fields survive the merge")
}

func TestToggleVisibilityKeepsOrderSlot(t *testing.T) {
	sections := makeSections(t, 0, 1, 2)
	d := NewDraft()
	d.Load(makeCompany(), sections)

	d.ToggleVisibility(sections[1].ID)

	got := d.Sections()
	require.Len(t, got, 3, "a hidden section still occupies its slot")
	assert.False(t, got[1].Visible)
	assertDense(t, got)

	visible := d.VisibleSections()
	require.Len(t, visible, 2)
	assert.Equal(t, sections[0].ID, visible[0].ID)
	assert.Equal(t, sections[2].ID, visible[1].ID)
	assert.True(t, d.Dirty())
}

func TestReorderBackward(t *testing.T) {
	sections := makeSections(t, 0, 1, 2, 3)
	d := NewDraft()
	d.Load(makeCompany(), sections)

	// Move the last section before the second.
	d.Reorder(sections[3].ID, sections[1].ID)

	got := d.Sections()
	assert.Equal(t, sections[0].ID, got[0].ID)
	assert.Equal(t, sections[3].ID, got[1].ID)
	assert.Equal(t, sections[1].ID, got[2].ID)
	assert.Equal(t, sections[2].ID, got[3].ID)
	assertDense(t, got)
	assert.True(t, d.Dirty())
}

func TestReorderForward(t *testing.T) {
	sections := makeSections(t, 0, 1, 2, 3)
	d := NewDraft()
	d.Load(makeCompany(), sections)

	// Moving forward places the section immediately after the target.
	d.Reorder(sections[0].ID, sections[2].ID)

	got := d.Sections()
	assert.Equal(t, sections[1].ID, got[0].ID)
	assert.Equal(t, sections[2].ID, got[1].ID)
	assert.Equal(t, sections[0].ID, got[2].ID)
	assert.Equal(t, sections[3].ID, got[3].ID)
	assertDense(t, got)
}

func TestReorderIsPermutation(t *testing.T) {
	sections := makeSections(t, 0, 1, 2, 3, 4)
	d := NewDraft()
	d.Load(makeCompany(), sections)
	before := idSet(d.Sections())

	for _, pair := range [][2]int{{0, 4}, {4, 0}, {2, 3}, {3, 2}, {1, 1}} {
		d.Reorder(sections[pair[0]].ID, sections[pair[1]].ID)
		got := d.Sections()
		require.Len(t, got, len(sections), "reorder must not create or destroy elements")
		assert.Equal(t, before, idSet(got))
		assertDense(t, got)
	}
}

func TestReorderNoOps(t *testing.T) {
	sections := makeSections(t, 0, 1, 2)
	d := NewDraft()
	d.Load(makeCompany(), sections)
	before := d.Sections()

	d.Reorder(sections[1].ID, sections[1].ID)
	assert.Equal(t, before, d.Sections())
	assert.False(t, d.Dirty(), "Reorder(x, x) must not dirty the draft")

	d.Reorder(uuid.New(), sections[0].ID)
	d.Reorder(sections[0].ID, uuid.New())
	assert.Equal(t, before, d.Sections())
	assert.False(t, d.Dirty(), "reorder with a missing id must not dirty the draft")
}

func TestRemoveSectionRenumbers(t *testing.T) {
	sections := makeSections(t, 0, 1, 2)
	d := NewDraft()
	d.Load(makeCompany(), sections)

	d.RemoveSection(sections[1].ID)

	got := d.Sections()
	require.Len(t, got, 2)
	assert.Equal(t, sections[0].ID, got[0].ID)
	assert.Equal(t, sections[2].ID, got[1].ID)
	assertDense(t, got)
	assert.True(t, d.Dirty())
}

func TestRemoveSectionMissingIDIsNoOp(t *testing.T) {
	sections := makeSections(t, 0, 1)
	d := NewDraft()
	d.Load(makeCompany(), sections)

	d.RemoveSection(uuid.New())
	assert.Len(t, d.Sections(), 2)
	assert.False(t, d.Dirty())
}

func TestAddSectionSortsIntoPlace(t *testing.T) {
	sections := makeSections(t, 0, 1)
	d := NewDraft()
	d.Load(makeCompany(), sections)

	added := models.Section{
		ID:      uuid.New(),
		Type:    models.SectionBenefits,
		Content: models.BenefitsContent{},
		Order:   1,
		Visible: true,
	}
	d.AddSection(added)

	got := d.Sections()
	require.Len(t, got, 3)
	assertDense(t, got)
	assert.True(t, d.Dirty())
}

func TestDensityInvariantAcrossOperationSequence(t *testing.T) {
	sections := makeSections(t, 3, 0, 2, 1, 4)
	d := NewDraft()

	check := func(step string) {
		t.Helper()
		got := d.Sections()
		assertDense(t, got)
	}

	d.Load(makeCompany(), sections)
	check("load")
	d.Reorder(sections[0].ID, sections[4].ID)
	check("reorder forward")
	d.RemoveSection(sections[2].ID)
	check("remove")
	d.Reorder(sections[4].ID, sections[1].ID)
	check("reorder backward")
	d.RemoveSection(sections[0].ID)
	check("remove again")
	d.Load(makeCompany(), d.Sections())
	check("reload")
}

func TestDirtyFlagMonotonicity(t *testing.T) {
	sections := makeSections(t, 0, 1)
	d := NewDraft()
	d.Load(makeCompany(), sections)
	require.False(t, d.Dirty())

	mutations := []func(){
		func() { d.SetTitle(sections[0].ID, "a") },
		func() { d.SetContent(sections[0].ID, models.ContentPatch{Tagline: utils.Ptr("b")}) },
		func() { d.SetVisibility(sections[0].ID, false) },
		func() { d.ToggleVisibility(sections[0].ID) },
		func() { d.Reorder(sections[0].ID, sections[1].ID) },
	}
	for _, mutate := range mutations {
		d.MarkClean()
		require.False(t, d.Dirty())
		mutate()
		assert.True(t, d.Dirty(), "every mutating operation sets the dirty flag")
	}

	d.MarkClean()
	assert.Equal(t, StateClean, d.State())
}

func TestPatchCompany(t *testing.T) {
	d := NewDraft()
	d.Load(makeCompany(), nil)

	d.PatchCompany(models.CompanyUpdate{
		Name:      utils.Ptr("Acme Rebranded"),
		Published: utils.Ptr(true),
	})

	company := d.Company()
	require.NotNil(t, company)
	assert.Equal(t, "Acme Rebranded", company.Name)
	assert.True(t, company.Published)
	assert.Equal(t, "acme", company.Slug, "the slug is immutable")
	assert.True(t, d.Dirty())
}

func TestPatchTheme(t *testing.T) {
	d := NewDraft()
	d.Load(makeCompany(), nil)

	d.PatchTheme(models.ThemePatch{TextColor: utils.Ptr("#000000")})

	company := d.Company()
	require.NotNil(t, company)
	assert.Equal(t, "#000000", company.Theme.TextColor)
	assert.Equal(t, "#112233", company.Theme.PrimaryColor, "unpatched theme fields survive")
	assert.True(t, d.Dirty())
}
