// Package editor holds one admin editing session: a draft of a recipe or blog
// post, the field operations on it and the single store call that persists it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"slices"
	"strings"
	"sync"
	"time"

	"recipe_journal/internal/domain/models"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidMode      = errors.New("mode must be recipe or blog")
	ErrUnknownField     = errors.New("unknown field")
	ErrFieldNotInMode   = errors.New("field not available in this mode")
	ErrFieldNotSettable = errors.New("field cannot be set directly")
	ErrInvalidValue     = errors.New("invalid field value")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrSubmitInProgress = errors.New("submit already in progress")
	ErrClosed           = errors.New("editor already submitted")
)

// Store persists a payload into one collection.
type Store interface {
	Insert(ctx context.Context, collection string, payload map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, payload map[string]any) error
}

// Uploader sends a file to the media host and returns where it landed.
type Uploader interface {
	UploadMedia(ctx context.Context, file *multipart.FileHeader, kind models.MediaKind) (*models.UploadResult, error)
}

type state int

const (
	stateIdle state = iota
	stateSubmitting
	stateClosed
)

type Option func(*Editor)

// WithClock overrides the time source used for updated_at.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		e.now = now
	}
}

type Editor struct {
	mu    sync.Mutex
	draft Draft
	state state
	store Store
	now   func() time.Time
	id    string
}

// New opens an editor on a blank draft of the given mode.
func New(mode Mode, store Store, opts ...Option) (*Editor, error) {
	var d Draft
	switch mode {
	case ModeRecipe:
		d = NewRecipeDraft()
	case ModeBlog:
		d = NewBlogDraft()
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return newEditor(d, store, opts), nil
}

// Open starts editing a copy of an existing draft. The caller keeps its own value.
func Open(existing Draft, store Store, opts ...Option) *Editor {
	return newEditor(existing.clone(), store, opts)
}

func newEditor(d Draft, store Store, opts []Option) *Editor {
	e := &Editor{
		draft: d,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Mode() Mode {
	return e.draft.Mode()
}

// Draft returns a snapshot of the current working copy.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.clone()
}

func (e *Editor) SetField(field string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return ErrClosed
	}
	return e.draft.set(field, value)
}

func (e *Editor) SetArrayEntry(field string, index int, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return ErrClosed
	}

	entries, err := e.draft.list(field)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*entries) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
	}
	(*entries)[index] = value

	return nil
}

// AddArrayEntry appends a blank entry for the admin to fill in.
func (e *Editor) AddArrayEntry(field string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return ErrClosed
	}

	entries, err := e.draft.list(field)
	if err != nil {
		return err
	}
	*entries = append(*entries, "")

	return nil
}

func (e *Editor) RemoveArrayEntry(field string, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return ErrClosed
	}

	entries, err := e.draft.list(field)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*entries) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
	}
	*entries = slices.Delete(*entries, index, index+1)

	return nil
}

// AddTag appends the trimmed tag unless it is blank or already present.
// It reports whether the tag list changed.
func (e *Editor) AddTag(tag string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	tag = strings.TrimSpace(tag)
	if e.state == stateClosed || tag == "" {
		return false
	}

	item := e.draft.base()
	if slices.Contains(item.Tags, tag) {
		return false
	}
	item.Tags = append(item.Tags, tag)

	return true
}

// RemoveTag drops every entry exactly equal to tag.
func (e *Editor) RemoveTag(tag string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return
	}

	item := e.draft.base()
	item.Tags = slices.DeleteFunc(item.Tags, func(t string) bool { return t == tag })
}

// AttachMedia points the primary image or video at url. media_urls only grows.
func (e *Editor) AttachMedia(url string, kind models.MediaKind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return ErrClosed
	}
	return attach(e.draft.base(), url, kind)
}

func attach(item *models.ContentItem, url string, kind models.MediaKind) error {
	switch kind {
	case models.MediaKindImage:
		item.ImageURL = url
	case models.MediaKindVideo:
		item.VideoURL = url
	default:
		return fmt.Errorf("%w: media kind %q", ErrInvalidValue, kind)
	}
	item.MediaURLs = append(item.MediaURLs, url)
	return nil
}

// Upload sends file through up and attaches the resulting URL. On failure the
// draft is left as it was.
func (e *Editor) Upload(ctx context.Context, up Uploader, file *multipart.FileHeader, kind models.MediaKind) (string, error) {
	e.mu.Lock()
	closed := e.state == stateClosed
	e.mu.Unlock()
	if closed {
		return "", ErrClosed
	}

	res, err := up.UploadMedia(ctx, file, kind)
	if err != nil {
		var uploadErr *models.UploadError
		if errors.As(err, &uploadErr) {
			return "", err
		}
		return "", &models.UploadError{Kind: kind, Err: err}
	}
	if res == nil || res.URL == "" {
		return "", &models.UploadError{Kind: kind, Err: errors.New("media host returned no url")}
	}

	if err := e.AttachMedia(res.URL, kind); err != nil {
		return "", &models.UploadError{Kind: kind, Err: err}
	}

	return res.URL, nil
}

// Submit persists the draft as it is at the moment of the call: an insert
// when it has no id, an update keyed by id otherwise. The returned draft is
// the submitted snapshot, not a store read-back.
func (e *Editor) Submit(ctx context.Context) (Draft, error) {
	e.mu.Lock()
	switch e.state {
	case stateSubmitting:
		e.mu.Unlock()
		return nil, ErrSubmitInProgress
	case stateClosed:
		e.mu.Unlock()
		return nil, ErrClosed
	}

	if strings.TrimSpace(e.draft.base().Title) == "" {
		e.mu.Unlock()
		return nil, ErrTitleRequired
	}

	snapshot := e.draft.clone()
	e.state = stateSubmitting
	now := e.now
	e.mu.Unlock()

	id, err := persist(ctx, e.store, snapshot, now)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = stateIdle
		return nil, err
	}
	e.state = stateClosed
	e.id = id

	return snapshot, nil
}

// StoredID is the id of the persisted item once Submit has succeeded.
func (e *Editor) StoredID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

func persist(ctx context.Context, store Store, d Draft, now func() time.Time) (string, error) {
	collection := d.Mode().Collection()
	payload := d.Payload()
	id := d.base().ID

	if id == "" {
		newID, err := store.Insert(ctx, collection, payload)
		if err != nil {
			return "", &models.PersistenceError{Op: "insert", Collection: collection, Err: err}
		}
		return newID, nil
	}

	payload["updated_at"] = now().UTC()
	if err := store.Update(ctx, collection, id, payload); err != nil {
		return "", &models.PersistenceError{Op: "update", Collection: collection, Err: err}
	}
	return id, nil
}
