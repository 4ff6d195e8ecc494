// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/internal/engine/repo"
	"github.com/go-arcade/backoffice/internal/pkg/notify/channel"
	"github.com/go-arcade/backoffice/internal/pkg/storage"
	"github.com/go-arcade/backoffice/pkg/http/jwt"
	"gorm.io/gorm"
)

var errUnique = errors.New("duplicate entry")

// store is an in-memory database whose transactions roll back by snapshot.
type store struct {
	mu       sync.Mutex
	nextID   uint
	members  map[uint]model.Member
	branches map[uint]model.Branch
	menus    map[uint]model.Menu
	grants   []model.Authority
	files    []model.File
}

func newStore() *store {
	return &store{
		members:  map[uint]model.Member{},
		branches: map[uint]model.Branch{},
		menus:    map[uint]model.Menu{},
	}
}

func (s *store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *store) snapshot() *store {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := &store{
		nextID:   s.nextID,
		members:  make(map[uint]model.Member, len(s.members)),
		branches: make(map[uint]model.Branch, len(s.branches)),
		menus:    make(map[uint]model.Menu, len(s.menus)),
		grants:   append([]model.Authority(nil), s.grants...),
		files:    append([]model.File(nil), s.files...),
	}
	for k, v := range s.members {
		cp.members[k] = v
	}
	for k, v := range s.branches {
		cp.branches[k] = v
	}
	for k, v := range s.menus {
		cp.menus[k] = v
	}
	return cp
}

func (s *store) restore(cp *store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID, s.members, s.branches, s.menus, s.grants, s.files =
		cp.nextID, cp.members, cp.branches, cp.menus, cp.grants, cp.files
}

func (s *store) repos() *repo.Repositories {
	r := &repo.Repositories{
		Member:    &fakeMembers{s},
		Branch:    &fakeBranches{s},
		Menu:      &fakeMenus{s},
		Authority: &fakeGrants{s},
		File:      &fakeFiles{s},
	}
	return r.WithTransaction(func(ctx context.Context, fn func(tx *repo.Repositories) error) error {
		cp := s.snapshot()
		if err := fn(r); err != nil {
			s.restore(cp)
			return err
		}
		return nil
	})
}

func (s *store) addBranch(seq int, deleted bool) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.Branch{Name: "branch", Title: "Branch", URL: "https://b.io", Seq: seq}
	b.ID = s.id()
	if deleted {
		b.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	s.branches[b.ID] = b
	return b.ID
}

func (s *store) addMenu(seq int, deleted bool) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := model.Menu{Title: "menu", Link: "/m", Seq: seq}
	m.ID = s.id()
	if deleted {
		m.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	s.menus[m.ID] = m
	return m.ID
}

func (s *store) member(id uint) model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[id]
}

func (s *store) setRole(id uint, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Role = role
	s.members[id] = m
	return nil
}

func (s *store) grantsOf(memberID uint) [][2]uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out [][2]uint
	for _, g := range s.grants {
		if g.MemberID == memberID {
			out = append(out, [2]uint{g.BranchID, g.MenuID})
		}
	}
	return out
}

type fakeMembers struct{ s *store }

func (f *fakeMembers) Create(_ context.Context, m *model.Member) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, e := range f.s.members {
		if e.LoginID == m.LoginID || e.Email == m.Email {
			return errUnique
		}
	}
	m.ID = f.s.id()
	m.CreatedAt, m.UpdatedAt = time.Now(), time.Now()
	f.s.members[m.ID] = *m
	return nil
}

func (f *fakeMembers) count(match func(model.Member) bool) int64 {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, m := range f.s.members {
		if match(m) {
			n++
		}
	}
	return n
}

func (f *fakeMembers) CountByLoginID(_ context.Context, loginID string) (int64, error) {
	return f.count(func(m model.Member) bool { return m.LoginID == loginID }), nil
}

func (f *fakeMembers) CountByEmail(_ context.Context, email string) (int64, error) {
	return f.count(func(m model.Member) bool { return m.Email == email }), nil
}

func (f *fakeMembers) find(match func(model.Member) bool) (*model.Member, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, m := range f.s.members {
		if match(m) {
			cp := m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMembers) FindLive(_ context.Context, id uint) (*model.Member, error) {
	return f.find(func(m model.Member) bool { return m.ID == id && !m.DeletedAt.Valid })
}

func (f *fakeMembers) FindAny(_ context.Context, id uint) (*model.Member, error) {
	return f.find(func(m model.Member) bool { return m.ID == id })
}

func (f *fakeMembers) FindDeleted(_ context.Context, id uint) (*model.Member, error) {
	return f.find(func(m model.Member) bool { return m.ID == id && m.DeletedAt.Valid })
}

func (f *fakeMembers) FindByLoginID(_ context.Context, loginID string) (*model.Member, error) {
	return f.find(func(m model.Member) bool { return m.LoginID == loginID && !m.DeletedAt.Valid })
}

func (f *fakeMembers) FindByEmailAndUsername(_ context.Context, email, username string) (*model.Member, error) {
	return f.find(func(m model.Member) bool {
		return m.Email == email && m.Username == username && !m.DeletedAt.Valid
	})
}

func (f *fakeMembers) FindDetail(ctx context.Context, id uint) (*model.Member, error) {
	m, err := f.FindAny(ctx, id)
	if err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, g := range f.s.grants {
		if g.MemberID != id {
			continue
		}
		b, mn := f.s.branches[g.BranchID], f.s.menus[g.MenuID]
		g.Branch, g.Menu = &b, &mn
		m.Authorities = append(m.Authorities, g)
	}
	return m, nil
}

func (f *fakeMembers) Count(_ context.Context, deleted bool) (int64, error) {
	return f.count(func(m model.Member) bool { return m.DeletedAt.Valid == deleted }), nil
}

func (f *fakeMembers) List(_ context.Context, deleted bool, offset, limit int) ([]model.Member, int64, error) {
	f.s.mu.Lock()
	var all []model.Member
	for _, m := range f.s.members {
		if m.DeletedAt.Valid == deleted {
			all = append(all, m)
		}
	}
	f.s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Member{}, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (f *fakeMembers) Update(_ context.Context, id uint, cols map[string]any) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.members[id]
	if !ok {
		return 0, nil
	}
	for k, v := range cols {
		switch k {
		case "email":
			m.Email = v.(string)
		case "username":
			m.Username = v.(string)
		case "password":
			m.Password = v.(string)
		case "role":
			m.Role = v.(string)
		case "email_validate_at":
			if t, ok := v.(time.Time); ok {
				m.EmailValidateAt = &t
			} else {
				m.EmailValidateAt = nil
			}
		}
	}
	m.UpdatedAt = time.Now()
	f.s.members[id] = m
	return 1, nil
}

func (f *fakeMembers) SetRefreshToken(_ context.Context, id uint, token string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m := f.s.members[id]
	m.RefreshToken = &token
	f.s.members[id] = m
	return nil
}

func (f *fakeMembers) SoftDelete(_ context.Context, id uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.members[id]
	if !ok || m.DeletedAt.Valid {
		return 0, nil
	}
	m.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	f.s.members[id] = m
	return 1, nil
}

func (f *fakeMembers) Restore(_ context.Context, id uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.members[id]
	if !ok || !m.DeletedAt.Valid {
		return 0, nil
	}
	m.DeletedAt = gorm.DeletedAt{}
	f.s.members[id] = m
	return 1, nil
}

type fakeBranches struct{ s *store }

func (f *fakeBranches) Create(_ context.Context, b *model.Branch) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b.ID = f.s.id()
	f.s.branches[b.ID] = *b
	return nil
}

func (f *fakeBranches) List(_ context.Context, deleted bool) ([]model.Branch, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]model.Branch, 0)
	for _, b := range f.s.branches {
		if b.DeletedAt.Valid == deleted {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (f *fakeBranches) get(id uint, deleted bool) (*model.Branch, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.branches[id]
	if !ok || b.DeletedAt.Valid != deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeBranches) FindLive(_ context.Context, id uint) (*model.Branch, error) {
	return f.get(id, false)
}

func (f *fakeBranches) FindDeleted(_ context.Context, id uint) (*model.Branch, error) {
	return f.get(id, true)
}

func (f *fakeBranches) Exists(_ context.Context, id uint) (bool, error) {
	_, err := f.get(id, false)
	return err == nil, nil
}

func (f *fakeBranches) Update(_ context.Context, id uint, cols map[string]any) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b := f.s.branches[id]
	if v, ok := cols["name"]; ok {
		b.Name = v.(string)
	}
	if v, ok := cols["seq"]; ok {
		b.Seq = v.(int)
	}
	f.s.branches[id] = b
	return 1, nil
}

func (f *fakeBranches) SoftDelete(_ context.Context, id uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b := f.s.branches[id]
	b.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	f.s.branches[id] = b
	return 1, nil
}

func (f *fakeBranches) Restore(_ context.Context, id uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b := f.s.branches[id]
	b.DeletedAt = gorm.DeletedAt{}
	f.s.branches[id] = b
	return 1, nil
}

func (f *fakeBranches) CountLive(_ context.Context, ids []uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id := range uniq(ids) {
		if b, ok := f.s.branches[id]; ok && !b.DeletedAt.Valid {
			n++
		}
	}
	return n, nil
}

func (f *fakeBranches) ListByMember(_ context.Context, memberID uint) ([]model.BranchView, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	seen := map[uint]bool{}
	out := make([]model.BranchView, 0)
	for _, g := range f.s.grants {
		b, ok := f.s.branches[g.BranchID]
		if g.MemberID != memberID || !ok || b.DeletedAt.Valid || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, model.BranchView{ID: b.ID, Name: b.Name, Title: b.Title, URL: b.URL, Seq: b.Seq, IsShow: b.IsShow})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

type fakeMenus struct{ s *store }

func (f *fakeMenus) Create(_ context.Context, m *model.Menu) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m.ID = f.s.id()
	f.s.menus[m.ID] = *m
	return nil
}

func (f *fakeMenus) List(_ context.Context, deleted bool) ([]model.Menu, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]model.Menu, 0)
	for _, m := range f.s.menus {
		if m.DeletedAt.Valid == deleted {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (f *fakeMenus) get(id uint, deleted bool) (*model.Menu, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.menus[id]
	if !ok || m.DeletedAt.Valid != deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (f *fakeMenus) FindLive(_ context.Context, id uint) (*model.Menu, error) {
	return f.get(id, false)
}

func (f *fakeMenus) FindDeleted(_ context.Context, id uint) (*model.Menu, error) {
	return f.get(id, true)
}

func (f *fakeMenus) Update(_ context.Context, id uint, cols map[string]any) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m := f.s.menus[id]
	if v, ok := cols["title"]; ok {
		m.Title = v.(string)
	}
	f.s.menus[id] = m
	return 1, nil
}

func (f *fakeMenus) SoftDelete(_ context.Context, id uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m := f.s.menus[id]
	m.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	f.s.menus[id] = m
	return 1, nil
}

func (f *fakeMenus) Restore(_ context.Context, id uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m := f.s.menus[id]
	m.DeletedAt = gorm.DeletedAt{}
	f.s.menus[id] = m
	return 1, nil
}

func (f *fakeMenus) CountLive(_ context.Context, ids []uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id := range uniq(ids) {
		if m, ok := f.s.menus[id]; ok && !m.DeletedAt.Valid {
			n++
		}
	}
	return n, nil
}

func (f *fakeMenus) ListByMember(_ context.Context, memberID, branchID uint) ([]model.MenuView, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]model.MenuView, 0)
	for _, g := range f.s.grants {
		m, ok := f.s.menus[g.MenuID]
		if g.MemberID != memberID || g.BranchID != branchID || !ok || m.DeletedAt.Valid {
			continue
		}
		out = append(out, model.MenuView{ID: m.ID, Title: m.Title, Link: m.Link, Seq: m.Seq})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

type fakeGrants struct{ s *store }

func (f *fakeGrants) DeleteByMember(_ context.Context, memberID uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	kept := f.s.grants[:0:0]
	for _, g := range f.s.grants {
		if g.MemberID != memberID {
			kept = append(kept, g)
		}
	}
	f.s.grants = kept
	return nil
}

func (f *fakeGrants) CreateBatch(_ context.Context, rows []model.Authority) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range rows {
		r.ID = f.s.id()
		f.s.grants = append(f.s.grants, r)
	}
	return nil
}

type fakeFiles struct{ s *store }

func (f *fakeFiles) CreateBatch(_ context.Context, files []model.File) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, file := range files {
		file.ID = f.s.id()
		f.s.files = append(f.s.files, file)
	}
	return nil
}

func (f *fakeFiles) List(_ context.Context, branchID uint, offset, limit int) ([]model.File, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var all []model.File
	for _, file := range f.s.files {
		if file.BranchID == branchID {
			all = append(all, file)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []model.File{}, total, nil
	}
	return all[offset:min(offset+limit, len(all))], total, nil
}

func (f *fakeFiles) FindByBranch(_ context.Context, id, branchID uint) (*model.File, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, file := range f.s.files {
		if file.ID == id && file.BranchID == branchID {
			cp := file
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFiles) Touch(_ context.Context, id uint, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := range f.s.files {
		if f.s.files[i].ID == id {
			f.s.files[i].LastAccessedAt = &at
		}
	}
	return nil
}

func uniq(ids []uint) map[uint]struct{} {
	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// fakeStorage fails every upload whose body contains "fail".
type fakeStorage struct {
	mu      sync.Mutex
	puts    []string
	bodies  map[string]string
	objects []storage.ObjectInfo
}

func (f *fakeStorage) PutObject(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, key)
	if strings.Contains(buf.String(), "fail") {
		return "", errors.New("put failed")
	}
	if f.bodies == nil {
		f.bodies = map[string]string{}
	}
	f.bodies[key] = buf.String()
	return f.URL(key), nil
}

func (f *fakeStorage) StatObject(_ context.Context, key, _ string) (*storage.ObjectMeta, error) {
	if key == "missing" {
		return nil, storage.ErrObjectNotFound
	}
	return &storage.ObjectMeta{Status: 200, ContentLength: 3}, nil
}

func (f *fakeStorage) ListObjects(_ context.Context, prefix string, maxKeys int) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for _, o := range f.objects {
		if strings.HasPrefix(o.Key, prefix) && len(out) < maxKeys {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, _, versionID string) (*storage.DeleteResult, error) {
	return &storage.DeleteResult{DeleteMarker: true, VersionID: versionID}, nil
}

func (f *fakeStorage) URL(key string) string {
	return "https://cdn.example.com/" + key
}

func (f *fakeStorage) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

type sentMail struct {
	to      []string
	subject string
	html    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) Send(_ context.Context, to []string, subject, html string) (*channel.EmailResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html})
	return &channel.EmailResult{Accepted: to, Rejected: []string{}, MessageSize: len(html), Response: "250 OK"}, nil
}

func (f *fakeMailer) NotifyAddress() string {
	return "ops@example.com"
}

func (f *fakeMailer) mails() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type fakeMessenger struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeMessenger) Send(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return "ok", nil
}

func (f *fakeMessenger) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func newTestIssuer() *jwt.Issuer {
	return jwt.NewIssuer(jwt.Secrets{
		AccessSecret:  "access",
		AccessExpire:  time.Hour,
		RefreshSecret: "refresh",
		RefreshExpire: 24 * time.Hour,
		EmailSecret:   "email",
		EmailExpire:   10 * time.Minute,
	})
}
