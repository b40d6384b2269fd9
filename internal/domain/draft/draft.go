// Package draft contains the in-progress recipe snapshot the authoring
// wizard autosaves between steps. Every content field is optional; the
// snapshot only becomes a validated recipe when it is published.
package draft

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Wizard step bounds. Step 1 collects general info, step 4 the images.
const (
	FirstStep = 1
	LastStep  = 4
)

var (
	ErrInvalidStep   = errors.New("wizard step must be between 1 and 4")
	ErrDraftNotFound = errors.New("draft not found")
)

// Draft mirrors the recipe fields without any of the recipe's invariants.
// Drafts are admin-only and carry no slug: they are not publicly
// addressable.
type Draft struct {
	id          uuid.UUID
	title       string
	description string
	category    string
	prepTime    int
	servings    int
	ingredients []string
	steps       []string
	images      []string
	currentStep int
	authorEmail string
	createdAt   time.Time
	updatedAt   time.Time
}

// Snapshot is the denormalized form state written on every autosave.
type Snapshot struct {
	Title       string
	Description string
	Category    string
	PrepTime    int
	Servings    int
	Ingredients []string
	Steps       []string
	Images      []string
	CurrentStep int
	AuthorEmail string
}

// New allocates a draft for a fresh authoring session and applies the first
// snapshot. The id is generated here and cached by the caller for every
// later autosave of the same session.
func New(snap Snapshot) (*Draft, error) {
	d := &Draft{
		id:        uuid.New(),
		createdAt: time.Now(),
	}
	if err := d.Apply(snap); err != nil {
		return nil, err
	}
	return d, nil
}

// Restore rebuilds a draft from persisted state.
func Restore(id uuid.UUID, snap Snapshot, createdAt, updatedAt time.Time) *Draft {
	return &Draft{
		id:          id,
		title:       snap.Title,
		description: snap.Description,
		category:    snap.Category,
		prepTime:    snap.PrepTime,
		servings:    snap.Servings,
		ingredients: snap.Ingredients,
		steps:       snap.Steps,
		images:      snap.Images,
		currentStep: snap.CurrentStep,
		authorEmail: snap.AuthorEmail,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Apply overwrites the draft with a full form snapshot. Last write wins;
// only one browser session edits a given draft, so there is no conflict
// detection. Blank list entries are dropped but nothing else is validated.
func (d *Draft) Apply(snap Snapshot) error {
	step := snap.CurrentStep
	if step == 0 {
		step = FirstStep
	}
	if step < FirstStep || step > LastStep {
		return ErrInvalidStep
	}

	d.title = strings.TrimSpace(snap.Title)
	d.description = strings.TrimSpace(snap.Description)
	d.category = strings.TrimSpace(snap.Category)
	d.prepTime = snap.PrepTime
	d.servings = snap.Servings
	d.ingredients = dropBlank(snap.Ingredients)
	d.steps = dropBlank(snap.Steps)
	d.images = snap.Images
	d.currentStep = step
	if snap.AuthorEmail != "" {
		d.authorEmail = snap.AuthorEmail
	}
	d.updatedAt = time.Now()
	return nil
}

func (d *Draft) ID() uuid.UUID         { return d.id }
func (d *Draft) Title() string         { return d.title }
func (d *Draft) Description() string   { return d.description }
func (d *Draft) Category() string      { return d.category }
func (d *Draft) PrepTime() int         { return d.prepTime }
func (d *Draft) Servings() int         { return d.servings }
func (d *Draft) Ingredients() []string { return d.ingredients }
func (d *Draft) Steps() []string       { return d.steps }
func (d *Draft) Images() []string      { return d.images }
func (d *Draft) CurrentStep() int      { return d.currentStep }
func (d *Draft) AuthorEmail() string   { return d.authorEmail }
func (d *Draft) CreatedAt() time.Time  { return d.createdAt }
func (d *Draft) UpdatedAt() time.Time  { return d.updatedAt }

// CoverImage returns the first image, or "" when none were added yet.
func (d *Draft) CoverImage() string {
	if len(d.images) == 0 {
		return ""
	}
	return d.images[0]
}

func dropBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
