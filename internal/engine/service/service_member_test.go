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
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/pkg/http/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Passw0rd!"

type memberFixture struct {
	store     *store
	storage   *fakeStorage
	mailer    *fakeMailer
	messenger *fakeMessenger
	issuer    *jwt.Issuer
	svc       *MemberService
}

func newMemberFixture() *memberFixture {
	f := &memberFixture{
		store:     newStore(),
		storage:   &fakeStorage{},
		mailer:    &fakeMailer{},
		messenger: &fakeMessenger{},
		issuer:    newTestIssuer(),
	}
	f.svc = NewMemberService(f.store.repos(), NewAuthorityService(), f.issuer, f.mailer, f.messenger)
	f.svc.hashCost = bcrypt.MinCost
	return f
}

func (f *memberFixture) signUp(t *testing.T, loginID string, branches, menus []uint) *model.SignUpResp {
	t.Helper()
	resp, err := f.svc.SignUp(context.Background(), &model.SignUpReq{
		LoginID:   loginID,
		Email:     loginID + "@example.com",
		Username:  loginID,
		Password:  testPassword,
		BranchIDs: branches,
		MenuIDs:   menus,
	})
	require.NoError(t, err)
	return resp
}

func TestSignUp_CrossProduct(t *testing.T) {
	f := newMemberFixture()
	b1, b2 := f.store.addBranch(1, false), f.store.addBranch(2, false)
	m1, m2, m3 := f.store.addMenu(1, false), f.store.addMenu(2, false), f.store.addMenu(3, false)

	resp := f.signUp(t, "alice01", []uint{b1, b2}, []uint{m1, m2, m3})

	assert.Equal(t, model.RoleUser, resp.Role)
	assert.Equal(t, []uint{b1, b2}, resp.BranchIDs)
	grants := f.store.grantsOf(resp.ID)
	assert.Len(t, grants, 6)
	assert.Equal(t, [2]uint{b1, m1}, grants[0])
	assert.Equal(t, [2]uint{b2, m3}, grants[5])

	stored := f.store.member(resp.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(testPassword)))
}

func TestSignUp_NoGrants(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "bob01", nil, nil)

	assert.Empty(t, f.store.grantsOf(resp.ID))
	assert.NotNil(t, resp.BranchIDs)
	assert.NotNil(t, resp.MenuIDs)
}

func TestSignUp_Rollback(t *testing.T) {
	tests := []struct {
		name    string
		deleted bool
		menus   func(s *store) []uint
		want    *Error
	}{
		{
			name:  "one sided",
			menus: func(*store) []uint { return nil },
			want:  ErrGrantsOneSided,
		},
		{
			name:    "deleted branch",
			deleted: true,
			menus:   func(s *store) []uint { return []uint{s.addMenu(1, false)} },
			want:    ErrBranchNotSelectable,
		},
		{
			name:  "missing menu",
			menus: func(*store) []uint { return []uint{999} },
			want:  ErrMenuNotSelectable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMemberFixture()
			branch := f.store.addBranch(1, tt.deleted)

			_, err := f.svc.SignUp(context.Background(), &model.SignUpReq{
				LoginID:   "carol01",
				Email:     "carol@example.com",
				Username:  "carol",
				Password:  testPassword,
				BranchIDs: []uint{branch},
				MenuIDs:   tt.menus(f.store),
			})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, KindValidation, KindOf(err))

			n, _ := f.store.repos().Member.CountByLoginID(context.Background(), "carol01")
			assert.Zero(t, n)
			assert.Empty(t, f.store.grants)
		})
	}
}

func TestSignUp_Duplicates(t *testing.T) {
	f := newMemberFixture()
	f.signUp(t, "dave01", nil, nil)

	_, err := f.svc.SignUp(context.Background(), &model.SignUpReq{
		LoginID: "dave01", Email: "other@example.com", Username: "dave", Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrLoginIDTaken)
	assert.Equal(t, 400, KindOf(err).Status())

	_, err = f.svc.SignUp(context.Background(), &model.SignUpReq{
		LoginID: "dave02", Email: "dave01@example.com", Username: "dave", Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	dup, err := f.svc.IsLoginIDDuplicated(context.Background(), &model.DuplicatedIDReq{LoginID: "dave01"})
	require.NoError(t, err)
	assert.True(t, dup.IsDuplicated)

	dup, err = f.svc.IsEmailDuplicated(context.Background(), &model.DuplicatedEmailReq{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.False(t, dup.IsDuplicated)
}

func TestSignUp_Invalid(t *testing.T) {
	f := newMemberFixture()
	_, err := f.svc.SignUp(context.Background(), &model.SignUpReq{
		LoginID: "eve01", Email: "eve@example.com", Username: "eve", Password: "password",
	})
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Equal(t, "fieldPassword", se.MessageID)
}

func TestLoginAndRefresh(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "frank01", nil, nil)
	ctx := context.Background()

	_, err := f.svc.Refresh(ctx, &model.RefreshReq{ID: resp.ID, RefreshToken: "x"})
	assert.ErrorIs(t, err, ErrRefreshTokenMissing)

	_, err = f.svc.Login(ctx, &model.LoginReq{LoginID: "frank01", Password: "Wrong0ne!"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Equal(t, 401, KindOf(err).Status())

	pair, err := f.svc.Login(ctx, &model.LoginReq{LoginID: "frank01", Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, f.store.member(resp.ID).StoredRefreshToken())

	claims, err := f.issuer.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.ID)
	assert.Equal(t, model.RoleUser, claims.Role)

	refreshed, err := f.svc.Refresh(ctx, &model.RefreshReq{ID: resp.ID, RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Empty(t, refreshed.RefreshToken)
	assert.Equal(t, pair.RefreshToken, f.store.member(resp.ID).StoredRefreshToken())

	_, err = f.svc.Refresh(ctx, &model.RefreshReq{ID: resp.ID, RefreshToken: pair.RefreshToken + "x"})
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)
}

func TestLogin_UnknownMember(t *testing.T) {
	f := newMemberFixture()
	_, err := f.svc.Login(context.Background(), &model.LoginReq{LoginID: "ghost", Password: testPassword})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestSendValidationAndConfirm(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "grace01", nil, nil)
	ctx := context.Background()

	result, err := f.svc.SendValidation(ctx, &model.SendValidationReq{Email: "grace01@example.com", Username: "grace01"}, "https://admin.example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"grace01@example.com"}, result.Accepted)

	mails := f.mailer.mails()
	require.Len(t, mails, 1)
	assert.Equal(t, validationSubject, mails[0].subject)
	assert.Contains(t, mails[0].html, "https://admin.example.com/members/validate/")

	token, err := f.issuer.SignEmail(resp.ID)
	require.NoError(t, err)
	affected, err := f.svc.ConfirmEmail(ctx, token)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected.AffectedRows)

	m := f.store.member(resp.ID)
	assert.Equal(t, model.RoleVerified, m.Role)
	assert.NotNil(t, m.EmailValidateAt)

	_, err = f.svc.ConfirmEmail(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrEmailTokenInvalid)

	_, err = f.svc.SendValidation(ctx, &model.SendValidationReq{Email: "grace01@example.com", Username: "someone"}, "")
	assert.ErrorIs(t, err, ErrMemberGone)
}

func TestConfirmEmail_DenyStays(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "heidi01", nil, nil)
	_, err := f.store.repos().Member.Update(context.Background(), resp.ID, map[string]any{"role": model.RoleDeny})
	require.NoError(t, err)

	token, err := f.issuer.SignEmail(resp.ID)
	require.NoError(t, err)
	affected, err := f.svc.ConfirmEmail(context.Background(), token)
	require.NoError(t, err)
	assert.Zero(t, affected.AffectedRows)
	assert.Equal(t, model.RoleDeny, f.store.member(resp.ID).Role)
}

func TestUpdate_ReplacesGrants(t *testing.T) {
	f := newMemberFixture()
	b1, b2 := f.store.addBranch(1, false), f.store.addBranch(2, false)
	m1, m2 := f.store.addMenu(1, false), f.store.addMenu(2, false)
	resp := f.signUp(t, "ivan01", []uint{b1, b2}, []uint{m1, m2})

	_, err := f.svc.Update(context.Background(), resp.ID, &model.UpdateMemberReq{
		BranchIDs: &[]uint{b2},
		MenuIDs:   &[]uint{m1},
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]uint{{b2, m1}}, f.store.grantsOf(resp.ID))

	_, err = f.svc.Update(context.Background(), resp.ID, &model.UpdateMemberReq{
		BranchIDs: &[]uint{},
		MenuIDs:   &[]uint{},
	})
	require.NoError(t, err)
	assert.Empty(t, f.store.grantsOf(resp.ID))
}

func TestUpdate_GrantFailureKeepsState(t *testing.T) {
	f := newMemberFixture()
	b1 := f.store.addBranch(1, false)
	gone := f.store.addBranch(2, true)
	m1 := f.store.addMenu(1, false)
	resp := f.signUp(t, "judy01", []uint{b1}, []uint{m1})

	_, err := f.svc.Update(context.Background(), resp.ID, &model.UpdateMemberReq{
		Username:  ptr("judy"),
		BranchIDs: &[]uint{gone},
		MenuIDs:   &[]uint{m1},
	})
	assert.ErrorIs(t, err, ErrBranchNotSelectable)
	assert.Equal(t, [][2]uint{{b1, m1}}, f.store.grantsOf(resp.ID))
	assert.Equal(t, "judy01", f.store.member(resp.ID).Username)
}

func TestUpdate_EmailResetsRole(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "kim01", nil, nil)
	ctx := context.Background()
	_, err := f.store.repos().Member.Update(ctx, resp.ID, map[string]any{"role": model.RoleVerified, "email_validate_at": time.Now()})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, resp.ID, &model.UpdateMemberReq{Email: ptr("kim.new@example.com")})
	require.NoError(t, err)

	m := f.store.member(resp.ID)
	assert.Equal(t, "kim.new@example.com", m.Email)
	assert.Equal(t, model.RoleUser, m.Role)
	assert.Nil(t, m.EmailValidateAt)
}

func TestUpdate_Errors(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "leo01", nil, nil)
	f.signUp(t, "mia01", nil, nil)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, resp.ID, &model.UpdateMemberReq{})
	assert.ErrorIs(t, err, ErrNoRequestData)

	_, err = f.svc.Update(ctx, 999, &model.UpdateMemberReq{Username: ptr("x")})
	assert.ErrorIs(t, err, ErrMemberNotFound)

	_, err = f.svc.Update(ctx, resp.ID, &model.UpdateMemberReq{Email: ptr("mia01@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.Update(ctx, resp.ID, &model.UpdateMemberReq{BranchIDs: &[]uint{1}})
	assert.ErrorIs(t, err, ErrGrantsOneSided)
}

func TestUpdate_Password(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "nina01", nil, nil)

	_, err := f.svc.Update(context.Background(), resp.ID, &model.UpdateMemberReq{Password: ptr("N3wPass!word")})
	require.NoError(t, err)

	stored := f.store.member(resp.ID).Password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("N3wPass!word")))
}

func TestRemoveAndRestore(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "oscar01", nil, nil)
	ctx := context.Background()
	actor := &jwt.Claims{ID: 1, Username: "root", Role: model.RoleAdmin}

	_, err := f.svc.Restore(ctx, resp.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)

	affected, err := f.svc.Remove(ctx, resp.ID, actor)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected.AffectedRows)
	deletedAt := f.store.member(resp.ID).DeletedAt
	require.True(t, deletedAt.Valid)

	_, err = f.svc.Remove(ctx, resp.ID, actor)
	assert.ErrorIs(t, err, ErrMemberNotFound)
	assert.Equal(t, deletedAt, f.store.member(resp.ID).DeletedAt)

	assert.Eventually(t, func() bool {
		msgs := f.messenger.messages()
		return len(msgs) == 1 && strings.Contains(msgs[0], "oscar01(") && strings.Contains(msgs[0], "removed by root(1)")
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		mails := f.mailer.mails()
		return len(mails) == 1 && mails[0].subject == removedSubject
	}, time.Second, 10*time.Millisecond)

	affected, err = f.svc.Restore(ctx, resp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected.AffectedRows)
	m := f.store.member(resp.ID)
	assert.False(t, m.DeletedAt.Valid)
	assert.Equal(t, model.RoleUser, m.Role)
}

type brokenDeletes struct {
	*fakeMembers
}

func (brokenDeletes) SoftDelete(context.Context, uint) (int64, error) {
	return 0, errors.New("lock wait timeout")
}

func (brokenDeletes) Restore(context.Context, uint) (int64, error) {
	return 0, errors.New("lock wait timeout")
}

func TestRemoveAndRestore_RollBack(t *testing.T) {
	f := newMemberFixture()
	resp := f.signUp(t, "paula01", nil, nil)
	ctx := context.Background()
	require.NoError(t, f.store.setRole(resp.ID, model.RoleVerified))

	live := f.svc.repos.Member
	f.svc.repos.Member = brokenDeletes{live.(*fakeMembers)}

	affected, err := f.svc.Remove(ctx, resp.ID, nil)
	assert.Nil(t, affected)
	assert.ErrorIs(t, err, ErrDatabase)
	m := f.store.member(resp.ID)
	assert.False(t, m.DeletedAt.Valid)
	assert.Equal(t, model.RoleVerified, m.Role)

	f.svc.repos.Member = live
	_, err = f.svc.Remove(ctx, resp.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.store.setRole(resp.ID, model.RoleVerified))

	f.svc.repos.Member = brokenDeletes{live.(*fakeMembers)}
	affected, err = f.svc.Restore(ctx, resp.ID)
	assert.Nil(t, affected)
	assert.ErrorIs(t, err, ErrDatabase)
	m = f.store.member(resp.ID)
	assert.True(t, m.DeletedAt.Valid)
	assert.Equal(t, model.RoleVerified, m.Role)
}

func TestListAndCount(t *testing.T) {
	f := newMemberFixture()
	for _, id := range []string{"pam01", "quinn01", "rob01"} {
		f.signUp(t, id, nil, nil)
	}
	ctx := context.Background()
	_, err := f.svc.Remove(ctx, 3, nil)
	require.NoError(t, err)

	live, err := f.svc.Count(ctx, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, live.Count)
	deleted, err := f.svc.Count(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted.Count)

	page, err := f.svc.List(ctx, false, model.PageReq{Page: 2, PerPage: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, "quinn01", page.List[0].LoginID)

	_, err = f.svc.List(ctx, false, model.PageReq{Page: 1, PerPage: 500})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestDetail(t *testing.T) {
	f := newMemberFixture()
	b := f.store.addBranch(1, false)
	m := f.store.addMenu(1, false)
	resp := f.signUp(t, "sam01", []uint{b}, []uint{m})

	detail, err := f.svc.Detail(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, detail.Authority, 1)
	assert.Equal(t, b, detail.Authority[0].Branch.ID)
	assert.Equal(t, m, detail.Authority[0].Menu.ID)

	_, err = f.svc.Detail(context.Background(), 999)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, 400, KindValidation.Status())
	assert.Equal(t, 400, KindNotFound.Status())
	assert.Equal(t, 400, KindConflict.Status())
	assert.Equal(t, 401, KindUnauthorized.Status())
	assert.Equal(t, 401, KindForbidden.Status())
	assert.Equal(t, 429, KindTooManyRequests.Status())
	assert.Equal(t, 503, KindUnavailable.Status())

	wrapped := ErrMemberNotFound.Wrap(errors.New("record not found"))
	assert.ErrorIs(t, wrapped, ErrMemberNotFound)
	assert.NotErrorIs(t, wrapped, ErrBranchNotFound)
	assert.Equal(t, ErrMemberNotFound.Msg, wrapped.Error())
	assert.Equal(t, KindUnavailable, KindOf(errors.New("boom")))
}

func ptr[T any](v T) *T {
	return &v
}
