package editor

import (
	"context"
	"fmt"
	"sort"

	e "github.com/openhire/pagebuilder/internal/builder/errors"
	"github.com/openhire/pagebuilder/internal/builder/models"
)

// Saver is the store-of-record boundary the save protocol talks to. The two
// calls are issued sequentially: company metadata first, then the full
// section list. There is no transaction spanning both; a failure of the
// second call after the first succeeded leaves company metadata persisted
// with sections unsaved, an accepted inconsistency window.
type Saver interface {
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	ReplaceSections(ctx context.Context, slug string, sections []models.Section) ([]models.Section, error)
}

// Save pushes the draft to the store of record.
//
// State machine: a Clean draft returns immediately with nothing to do. A
// Saving draft rejects the call with ErrSaveInProgress; there is no
// reentry. A Dirty draft transitions to Saving for the duration of the
// round-trip, then to Clean on success or back to Dirty on failure. Local
// edits are never discarded on failure; the user may retry.
//
// On success the draft adopts the canonical section list returned by the
// replace call. An empty response leaves the draft's own order authoritative.
func (d *Draft) Save(ctx context.Context, saver Saver) error {
	switch d.state {
	case StateSaving:
		return e.ErrSaveInProgress
	case StateClean:
		return nil
	}
	if d.company == nil {
		return fmt.Errorf("%w: no company loaded", e.ErrInvalidInput)
	}

	d.state = StateSaving

	update := d.companyUpdate()
	if _, err := saver.UpdateCompany(ctx, update); err != nil {
		d.state = StateDirty
		return fmt.Errorf("update company: %w", err)
	}

	canonical, err := saver.ReplaceSections(ctx, d.company.Slug, d.Sections())
	if err != nil {
		d.state = StateDirty
		return fmt.Errorf("replace sections: %w", err)
	}
	if len(canonical) > 0 {
		d.sections = make([]models.Section, len(canonical))
		copy(d.sections, canonical)
		sort.SliceStable(d.sections, func(i, j int) bool {
			return d.sections[i].Order < d.sections[j].Order
		})
		d.renumber()
	}

	d.state = StateClean
	return nil
}

// companyUpdate builds the full-snapshot partial update sent on save. Every
// editable field is included; the server applies it as a whole (last write
// wins, no concurrency token).
func (d *Draft) companyUpdate() *models.CompanyUpdate {
	c := d.company
	theme := c.Theme
	name := c.Name
	logo := c.LogoURL
	banner := c.BannerURL
	video := c.CultureVideoURL
	published := c.Published
	return &models.CompanyUpdate{
		Slug:            c.Slug,
		Name:            &name,
		LogoURL:         &logo,
		BannerURL:       &banner,
		CultureVideoURL: &video,
		Theme:           &theme,
		Published:       &published,
	}
}
