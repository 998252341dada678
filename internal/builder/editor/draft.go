// Package editor implements the in-memory draft held by one editing
// session: the company snapshot, the ordered section list, and the
// Clean/Dirty/Saving synchronization state. All mutations are synchronous
// transforms that keep the section order dense (0..N-1, no gaps or
// duplicates) within the draft.
package editor

import (
	"sort"

	"github.com/google/uuid"
	"github.com/openhire/pagebuilder/internal/builder/models"
)

// SyncState describes the draft's synchronization status relative to the
// store of record.
type SyncState int

const (
	// StateClean means the draft matches the last loaded or saved state.
	StateClean SyncState = iota
	// StateDirty means the draft holds unsaved edits.
	StateDirty
	// StateSaving means a save round-trip is outstanding.
	StateSaving
)

func (s SyncState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	}
	return "unknown"
}

// Draft is the editor's working copy of one company page. A Draft belongs
// to a single editing session and is not safe for concurrent use.
type Draft struct {
	company  *models.Company
	sections []models.Section
	state    SyncState
}

// NewDraft returns an empty, clean draft.
func NewDraft() *Draft {
	return &Draft{state: StateClean}
}

// Load replaces the working copy with fresh data from the store of record.
// Sections are sorted ascending by order and then renumbered from their
// array position, so stored order values that violate density or uniqueness
// are normalized rather than trusted. Loading clears the dirty flag: fresh
// data is never dirty.
func (d *Draft) Load(company *models.Company, sections []models.Section) {
	if company != nil {
		c := *company
		d.company = &c
	} else {
		d.company = nil
	}
	d.sections = make([]models.Section, len(sections))
	copy(d.sections, sections)
	sort.SliceStable(d.sections, func(i, j int) bool {
		return d.sections[i].Order < d.sections[j].Order
	})
	d.renumber()
	d.state = StateClean
}

// Company returns a copy of the draft's company snapshot, or nil when
// nothing is loaded.
func (d *Draft) Company() *models.Company {
	if d.company == nil {
		return nil
	}
	c := *d.company
	return &c
}

// Sections returns a copy of the working section list in order.
func (d *Draft) Sections() []models.Section {
	out := make([]models.Section, len(d.sections))
	copy(out, d.sections)
	return out
}

// VisibleSections returns only the sections the renderer should display,
// in order. Hidden sections keep their order slot but are excluded here.
func (d *Draft) VisibleSections() []models.Section {
	out := make([]models.Section, 0, len(d.sections))
	for _, s := range d.sections {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}

// State returns the draft's synchronization state.
func (d *Draft) State() SyncState {
	return d.state
}

// Dirty reports whether the draft holds unsaved edits.
func (d *Draft) Dirty() bool {
	return d.state == StateDirty
}

// MarkClean clears the dirty flag. Callers invoke it only after a confirmed
// successful save round-trip; Save does so itself.
func (d *Draft) MarkClean() {
	if d.state == StateDirty {
		d.state = StateClean
	}
}

// SetTitle replaces the title of the identified section. A missing id is a
// silent no-op: UI events may race with list changes, and a stale reference
// is tolerated rather than treated as an error.
func (d *Draft) SetTitle(sectionID uuid.UUID, title string) {
	i := d.find(sectionID)
	if i < 0 {
		return
	}
	d.sections[i].Title = title
	d.touch()
}

// SetContent shallow-merges the patch into the identified section's content
// payload. Patch fields that do not belong to the section's type are
// ignored. A missing id is a silent no-op.
func (d *Draft) SetContent(sectionID uuid.UUID, patch models.ContentPatch) {
	i := d.find(sectionID)
	if i < 0 {
		return
	}
	d.sections[i].Content = models.MergeContent(d.sections[i].Content, patch)
	d.touch()
}

// SetVisibility sets the identified section's visibility flag. The section
// keeps its order slot either way. A missing id is a silent no-op.
func (d *Draft) SetVisibility(sectionID uuid.UUID, visible bool) {
	i := d.find(sectionID)
	if i < 0 {
		return
	}
	d.sections[i].Visible = visible
	d.touch()
}

// ToggleVisibility flips the identified section's visibility flag. A
// missing id is a silent no-op.
func (d *Draft) ToggleVisibility(sectionID uuid.UUID) {
	i := d.find(sectionID)
	if i < 0 {
		return
	}
	d.sections[i].Visible = !d.sections[i].Visible
	d.touch()
}

// Reorder moves the source section to the target section's position and
// renumbers every section to its new positional index. Both indexes are
// taken on the pre-move list: moving an element forward places it
// immediately after the target, moving it backward places it immediately
// before. Equal or missing ids make the whole operation a no-op with no
// dirty flag change. The section set is permuted, never grown or shrunk.
func (d *Draft) Reorder(sourceID, targetID uuid.UUID) {
	if sourceID == targetID {
		return
	}
	src := d.find(sourceID)
	dst := d.find(targetID)
	if src < 0 || dst < 0 {
		return
	}
	moved := d.sections[src]
	d.sections = append(d.sections[:src], d.sections[src+1:]...)
	d.sections = append(d.sections, models.Section{})
	copy(d.sections[dst+1:], d.sections[dst:])
	d.sections[dst] = moved
	d.renumber()
	d.touch()
}

// AddSection appends a new section, re-sorts by the requested order and
// renumbers densely.
func (d *Draft) AddSection(s models.Section) {
	d.sections = append(d.sections, s)
	sort.SliceStable(d.sections, func(i, j int) bool {
		return d.sections[i].Order < d.sections[j].Order
	})
	d.renumber()
	d.touch()
}

// RemoveSection deletes the identified section and renumbers the remainder
// densely. A missing id is a silent no-op.
func (d *Draft) RemoveSection(sectionID uuid.UUID) {
	i := d.find(sectionID)
	if i < 0 {
		return
	}
	d.sections = append(d.sections[:i], d.sections[i+1:]...)
	d.renumber()
	d.touch()
}

// PatchCompany applies partial edits to the company snapshot. The slug is
// never changed. A draft with no company loaded is a no-op.
func (d *Draft) PatchCompany(update models.CompanyUpdate) {
	if d.company == nil {
		return
	}
	if update.Name != nil {
		d.company.Name = *update.Name
	}
	if update.LogoURL != nil {
		d.company.LogoURL = *update.LogoURL
	}
	if update.BannerURL != nil {
		d.company.BannerURL = *update.BannerURL
	}
	if update.CultureVideoURL != nil {
		d.company.CultureVideoURL = *update.CultureVideoURL
	}
	if update.Theme != nil {
		d.company.Theme = *update.Theme
	}
	if update.Published != nil {
		d.company.Published = *update.Published
	}
	d.touch()
}

// PatchTheme merges partial theme edits into the company snapshot.
func (d *Draft) PatchTheme(patch models.ThemePatch) {
	if d.company == nil {
		return
	}
	d.company.Theme = patch.Apply(d.company.Theme)
	d.touch()
}

func (d *Draft) find(id uuid.UUID) int {
	for i := range d.sections {
		if d.sections[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Draft) renumber() {
	for i := range d.sections {
		d.sections[i].Order = i
	}
}

// touch marks the draft dirty after a user edit. The draft is manipulated
// by a single-threaded session, so no edit can land while a save is
// outstanding; the guard keeps the state machine honest regardless.
func (d *Draft) touch() {
	if d.state != StateSaving {
		d.state = StateDirty
	}
}
