// Package library owns the script collection: a flat, insertion-ordered list
// of scripts and groups linked by parent id, mirrored to one storage key on
// every change.
package library

import (
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/prompter/internal/logger"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

// DefaultKey is the storage key holding the collection.
const DefaultKey = "teleprompter-scripts"

// Store is the canonical script collection. Scripts live in one slice in
// collection order; index maps id to position. Nesting is one level deep:
// groups are always top level and only groups are parents.
//
// A Store is owned by a single goroutine and is not safe for concurrent use.
type Store struct {
	storage types.Storage
	key     string
	log     *zap.Logger
	now     func() time.Time

	scripts []types.Script
	index   map[int64]int
	maxID   int64
	current *int64
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock overrides the time source used for id assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger overrides the module logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open builds a Store on an attached storage and restores the collection
// from it. A missing, unreadable or malformed value yields an empty
// collection; Open never fails.
func Open(storage types.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		log:     logger.WithModule("library"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore()
	return s
}

func (s *Store) restore() {
	s.scripts = []types.Script{}
	defer s.reindex()

	if s.storage == nil {
		return
	}
	data, ok, err := s.storage.Get(s.key)
	if err != nil {
		s.log.Warn("read collection failed, starting empty", zap.String("key", s.key), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	scripts, err := Decode(data)
	if err != nil {
		s.log.Warn("discarding malformed collection", zap.String("key", s.key), zap.Error(err))
		return
	}
	// Groups nest one level only. A stored group with a parent would fail
	// every later update, so it is lifted to the top level.
	for i := range scripts {
		if scripts[i].IsGroup && scripts[i].ParentID != nil {
			s.log.Warn("group had a parent, moved to top level",
				zap.Int64("id", scripts[i].ID), zap.Int64("parent", *scripts[i].ParentID))
			scripts[i].ParentID = nil
		}
	}
	s.scripts = scripts
	s.log.Debug("collection restored", zap.Int("records", len(scripts)))
}

// persist writes the whole collection. Failures are logged, not returned.
func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	data, err := Encode(s.scripts)
	if err != nil {
		s.log.Error("encode collection failed", zap.Error(err))
		return
	}
	if err := s.storage.Set(s.key, data); err != nil {
		s.log.Error("persist collection failed", zap.String("key", s.key), zap.Error(err))
	}
}

// reindex rebuilds the id index and the highest id seen.
func (s *Store) reindex() {
	s.index = make(map[int64]int, len(s.scripts))
	s.maxID = 0
	for i, sc := range s.scripts {
		s.index[sc.ID] = i
		if sc.ID > s.maxID {
			s.maxID = sc.ID
		}
	}
}

// nextID derives an id from the creation time in milliseconds, bumped past
// the highest existing id when the clock has not moved on.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.maxID {
		id = s.maxID + 1
	}
	return id
}

func (s *Store) lookup(id int64) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// checkParent enforces single-level nesting: groups have no parent and a
// script's parent must be an existing group.
func (s *Store) checkParent(isGroup bool, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if isGroup {
		return types.ErrInvalidParent
	}
	i, ok := s.lookup(*parentID)
	if !ok || !s.scripts[i].IsGroup {
		return types.ErrInvalidParent
	}
	return nil
}

// Create validates draft, assigns a fresh id and appends the record.
func (s *Store) Create(draft types.Draft) (types.Script, error) {
	if err := draft.Validate(); err != nil {
		return types.Script{}, err
	}
	if err := s.checkParent(draft.IsGroup, draft.ParentID); err != nil {
		return types.Script{}, err
	}

	d := draft.Clone()
	rec := types.Script{
		ID:          s.nextID(),
		Name:        d.Name,
		Content:     d.Content,
		FontSize:    d.FontSize,
		ScrollSpeed: d.ScrollSpeed,
		ParentID:    d.ParentID,
		IsGroup:     d.IsGroup,
	}
	if rec.IsGroup {
		rec.Content = ""
	}

	s.scripts = append(s.scripts, rec)
	s.index[rec.ID] = len(s.scripts) - 1
	s.maxID = rec.ID
	s.persist()

	s.log.Debug("record created", zap.Int64("id", rec.ID), zap.Bool("group", rec.IsGroup))
	return rec.Clone(), nil
}

// Update replaces the mutable fields of record id in place. The record's
// kind is fixed: draft.IsGroup is ignored.
func (s *Store) Update(id int64, draft types.Draft) error {
	i, ok := s.lookup(id)
	if !ok {
		return types.ErrNotFound
	}
	existing := s.scripts[i]

	draft.IsGroup = existing.IsGroup
	if err := draft.Validate(); err != nil {
		return err
	}
	if err := s.checkParent(existing.IsGroup, draft.ParentID); err != nil {
		return err
	}

	d := draft.Clone()
	updated := existing
	updated.Name = d.Name
	updated.Content = d.Content
	updated.FontSize = d.FontSize
	updated.ScrollSpeed = d.ScrollSpeed
	updated.ParentID = d.ParentID
	if updated.IsGroup {
		updated.Content = ""
	}

	s.scripts[i] = updated
	s.persist()
	return nil
}

// Move reassigns the parent of record id. A nil parentID moves it to the top
// level.
func (s *Store) Move(id int64, parentID *int64) error {
	i, ok := s.lookup(id)
	if !ok {
		return types.ErrNotFound
	}
	d := s.scripts[i].Draft()
	d.ParentID = parentID
	return s.Update(id, d)
}

// UpdatePlaybackSettings stores the session's font size and speed as the
// script's defaults. Groups have no playback settings.
func (s *Store) UpdatePlaybackSettings(id int64, fontSize int, scrollSpeed float64) error {
	i, ok := s.lookup(id)
	if !ok {
		return types.ErrNotFound
	}
	if s.scripts[i].IsGroup {
		return types.ErrGroupNotPlayable
	}
	if !types.ValidFontSize(fontSize) {
		return types.ErrInvalidFontSize
	}
	if !types.ValidScrollSpeed(scrollSpeed) {
		return types.ErrSpeedOutOfRange
	}

	s.scripts[i].FontSize = types.IntPtr(fontSize)
	s.scripts[i].ScrollSpeed = types.FloatPtr(scrollSpeed)
	s.persist()
	return nil
}

// Delete removes record id. Deleting a group also removes every record whose
// parent is that group. If the active playback record is removed the active
// reference is cleared. Returns the removed ids in collection order.
func (s *Store) Delete(id int64) ([]int64, error) {
	i, ok := s.lookup(id)
	if !ok {
		return nil, types.ErrNotFound
	}
	cascade := s.scripts[i].IsGroup

	kept := make([]types.Script, 0, len(s.scripts))
	var removed []int64
	for _, sc := range s.scripts {
		if sc.ID == id || (cascade && sc.HasParent(id)) {
			removed = append(removed, sc.ID)
			continue
		}
		kept = append(kept, sc)
	}

	s.scripts = kept
	s.reindex()
	if s.current != nil {
		if _, ok := s.lookup(*s.current); !ok {
			s.current = nil
			s.log.Debug("active script removed, playback cleared")
		}
	}
	s.persist()

	s.log.Debug("records deleted", zap.Int64s("ids", removed))
	return removed, nil
}

// ListChildren returns the records whose parent is parentID, or the top-level
// records when parentID is nil, in collection order.
func (s *Store) ListChildren(parentID *int64) []types.Script {
	out := []types.Script{}
	for _, sc := range s.scripts {
		if parentID == nil {
			if sc.IsTopLevel() {
				out = append(out, sc.Clone())
			}
			continue
		}
		if sc.HasParent(*parentID) {
			out = append(out, sc.Clone())
		}
	}
	return out
}

// Get returns record id.
func (s *Store) Get(id int64) (types.Script, error) {
	i, ok := s.lookup(id)
	if !ok {
		return types.Script{}, types.ErrNotFound
	}
	return s.scripts[i].Clone(), nil
}

// All returns every record in collection order.
func (s *Store) All() []types.Script {
	out := make([]types.Script, len(s.scripts))
	for i, sc := range s.scripts {
		out[i] = sc.Clone()
	}
	return out
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.scripts) }

// Groups returns the group records in collection order.
func (s *Store) Groups() []types.Script {
	out := []types.Script{}
	for _, sc := range s.scripts {
		if sc.IsGroup {
			out = append(out, sc.Clone())
		}
	}
	return out
}

// Load makes record id the active playback record. Groups cannot be loaded.
func (s *Store) Load(id int64) (types.Script, error) {
	i, ok := s.lookup(id)
	if !ok {
		return types.Script{}, types.ErrNotFound
	}
	if s.scripts[i].IsGroup {
		return types.Script{}, types.ErrGroupNotPlayable
	}
	s.current = types.IDPtr(id)
	return s.scripts[i].Clone(), nil
}

// Current returns the active playback record, resolved against the
// collection so it always reflects the latest edits.
func (s *Store) Current() (types.Script, bool) {
	if s.current == nil {
		return types.Script{}, false
	}
	i, ok := s.lookup(*s.current)
	if !ok {
		return types.Script{}, false
	}
	return s.scripts[i].Clone(), true
}

// Unload clears the active playback record.
func (s *Store) Unload() {
	s.current = nil
}

// Export returns the persisted JSON form of the collection.
func (s *Store) Export() ([]byte, error) {
	return Encode(s.scripts)
}
