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
	"fmt"
	"time"

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/internal/engine/repo"
	"github.com/go-arcade/backoffice/internal/pkg/notify"
	"github.com/go-arcade/backoffice/internal/pkg/notify/channel"
	"github.com/go-arcade/backoffice/pkg/http/jwt"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/go-arcade/backoffice/pkg/safe"
	"github.com/go-arcade/backoffice/pkg/util"
	"golang.org/x/crypto/bcrypt"
)

const (
	validationSubject = "[BACKOFFICE] Confirm your email address"
	removedSubject    = "[BACKOFFICE] Member removed"
	notifyTimeout     = 30 * time.Second
)

type MemberService struct {
	repos     *repo.Repositories
	authority *AuthorityService
	issuer    *jwt.Issuer
	mailer    notify.Mailer
	messenger notify.Messenger
	hashCost  int
	now       func() time.Time
}

func NewMemberService(repos *repo.Repositories, authority *AuthorityService, issuer *jwt.Issuer, mailer notify.Mailer, messenger notify.Messenger) *MemberService {
	return &MemberService{
		repos:     repos,
		authority: authority,
		issuer:    issuer,
		mailer:    mailer,
		messenger: messenger,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

func (ms *MemberService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), ms.hashCost)
	if err != nil {
		return "", ErrDatabase.Wrap(err)
	}
	return string(b), nil
}

// SignUp creates a user-role member and its grants in one transaction.
func (ms *MemberService) SignUp(ctx context.Context, req *model.SignUpReq) (*model.SignUpResp, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	hashed, err := ms.hash(req.Password)
	if err != nil {
		return nil, err
	}

	m := &model.Member{
		LoginID:  req.LoginID,
		Email:    req.Email,
		Username: req.Username,
		Password: hashed,
		Role:     model.RoleUser,
	}
	err = ms.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		n, err := tx.Member.CountByLoginID(ctx, req.LoginID)
		if err != nil {
			return dbErr(err, nil)
		}
		if n > 0 {
			return ErrLoginIDTaken
		}
		if n, err = tx.Member.CountByEmail(ctx, req.Email); err != nil {
			return dbErr(err, nil)
		}
		if n > 0 {
			return ErrEmailTaken
		}

		if err := tx.Member.Create(ctx, m); err != nil {
			return dbErr(err, nil)
		}
		grants, err := ms.authority.Resolve(ctx, tx, m.ID, req.BranchIDs, req.MenuIDs)
		if err != nil {
			return err
		}
		if err := tx.Authority.CreateBatch(ctx, grants); err != nil {
			return dbErr(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &model.SignUpResp{Member: *m, BranchIDs: req.BranchIDs, MenuIDs: req.MenuIDs}
	if resp.BranchIDs == nil {
		resp.BranchIDs = []uint{}
	}
	if resp.MenuIDs == nil {
		resp.MenuIDs = []uint{}
	}
	return resp, nil
}

// SendValidation mails a confirmation link rooted at baseURL to the member
// matching email and username.
func (ms *MemberService) SendValidation(ctx context.Context, req *model.SendValidationReq, baseURL string) (*channel.EmailResult, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	m, err := ms.repos.Member.FindByEmailAndUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, dbErr(err, ErrMemberGone)
	}

	token, err := ms.issuer.SignEmail(m.ID)
	if err != nil {
		return nil, ErrMail.Wrap(err)
	}
	link := fmt.Sprintf("%s/members/validate/%s", baseURL, token)
	html := fmt.Sprintf("Hi %s,<br/>"+
		"We just need to verify your email address before you can access the back office.<br/><br/>"+
		"Verify your email address <a href=\"%s\">%s</a><br/><br/>"+
		"Thanks!", m.Username, link, link)

	result, err := ms.mailer.Send(ctx, []string{req.Email}, validationSubject, html)
	if err != nil {
		return nil, ErrMail.Wrap(err)
	}
	return result, nil
}

// ConfirmEmail verifies the mailed token and promotes the member to verified.
// Banned members stay banned.
func (ms *MemberService) ConfirmEmail(ctx context.Context, token string) (*model.Affected, error) {
	claims, err := ms.issuer.ParseEmail(token)
	if err != nil {
		return nil, ErrEmailTokenInvalid.Wrap(err)
	}
	m, err := ms.repos.Member.FindLive(ctx, claims.ID)
	if err != nil {
		return nil, dbErr(err, ErrMemberNotFound)
	}
	if m.Role == model.RoleDeny {
		return &model.Affected{}, nil
	}
	n, err := ms.repos.Member.Update(ctx, m.ID, repo.VerifyColumns(ms.now()))
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Affected{AffectedRows: n}, nil
}

func (ms *MemberService) Login(ctx context.Context, req *model.LoginReq) (*model.TokenPair, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	m, err := ms.repos.Member.FindByLoginID(ctx, req.LoginID)
	if err != nil {
		return nil, dbErr(err, ErrMemberNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(req.Password)); err != nil {
		return nil, ErrPasswordMismatch
	}

	access, err := ms.issuer.SignAccess(m.ID, m.Username, m.Role)
	if err != nil {
		return nil, ErrDatabase.Wrap(err)
	}
	refresh, err := ms.issuer.SignRefresh(m.ID)
	if err != nil {
		return nil, ErrDatabase.Wrap(err)
	}
	if err := ms.repos.Member.SetRefreshToken(ctx, m.ID, refresh); err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh issues a new access token. The stored refresh token is kept.
func (ms *MemberService) Refresh(ctx context.Context, req *model.RefreshReq) (*model.TokenPair, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	m, err := ms.repos.Member.FindLive(ctx, req.ID)
	if err != nil {
		return nil, dbErr(err, ErrMemberNotFound)
	}

	stored := m.StoredRefreshToken()
	if stored == "" {
		return nil, ErrRefreshTokenMissing
	}
	if stored != req.RefreshToken {
		return nil, ErrRefreshTokenMismatch
	}
	claims, err := ms.issuer.ParseRefresh(req.RefreshToken)
	if err != nil {
		return nil, ErrRefreshTokenExpired.Wrap(err)
	}
	if claims.ID != m.ID {
		return nil, ErrRefreshTokenMismatch
	}

	access, err := ms.issuer.SignAccess(m.ID, m.Username, m.Role)
	if err != nil {
		return nil, ErrDatabase.Wrap(err)
	}
	return &model.TokenPair{AccessToken: access}, nil
}

func (ms *MemberService) IsLoginIDDuplicated(ctx context.Context, req *model.DuplicatedIDReq) (*model.Duplicated, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	n, err := ms.repos.Member.CountByLoginID(ctx, req.LoginID)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Duplicated{IsDuplicated: n > 0}, nil
}

func (ms *MemberService) IsEmailDuplicated(ctx context.Context, req *model.DuplicatedEmailReq) (*model.Duplicated, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	n, err := ms.repos.Member.CountByEmail(ctx, req.Email)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Duplicated{IsDuplicated: n > 0}, nil
}

func (ms *MemberService) Count(ctx context.Context, deleted bool) (*model.Count, error) {
	n, err := ms.repos.Member.Count(ctx, deleted)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Count{Count: n}, nil
}

func (ms *MemberService) List(ctx context.Context, deleted bool, page model.PageReq) (*model.Page[model.Member], error) {
	page.Normalize()
	if v := model.Validate(&page); v != nil {
		return nil, invalid(v)
	}
	list, total, err := ms.repos.Member.List(ctx, deleted, page.Offset(), page.PerPage)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Page[model.Member]{List: list, Total: total, Page: page.Page, PerPage: page.PerPage}, nil
}

func (ms *MemberService) Detail(ctx context.Context, id uint) (*model.MemberDetail, error) {
	m, err := ms.repos.Member.FindDetail(ctx, id)
	if err != nil {
		return nil, dbErr(err, ErrMemberNotFound)
	}
	return model.NewMemberDetail(m), nil
}

// Update applies a partial change to a member, deleted or not. A new email
// sends the member back to unverified unless banned.
func (ms *MemberService) Update(ctx context.Context, id uint, req *model.UpdateMemberReq) (*model.Affected, error) {
	if req.Empty() {
		return nil, ErrNoRequestData
	}
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	cols := map[string]any{}
	if req.Password != nil {
		hashed, err := ms.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		cols["password"] = hashed
	}
	util.SetIfNotNil(cols, "username", req.Username)

	var affected int64
	err := ms.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		m, err := tx.Member.FindAny(ctx, id)
		if err != nil {
			return dbErr(err, ErrMemberNotFound)
		}

		if req.GrantsChanged() {
			if err := ms.authority.Replace(ctx, tx, m.ID, deref(req.BranchIDs), deref(req.MenuIDs)); err != nil {
				return err
			}
		}

		if req.Email != nil && *req.Email != m.Email {
			n, err := tx.Member.CountByEmail(ctx, *req.Email)
			if err != nil {
				return dbErr(err, nil)
			}
			if n > 0 {
				return ErrEmailTaken
			}
			cols["email"] = *req.Email
			if m.Role != model.RoleDeny {
				for k, v := range repo.ResetColumns() {
					cols[k] = v
				}
			}
		}
		if len(cols) == 0 {
			cols["updated_at"] = ms.now()
		}

		affected, err = tx.Member.Update(ctx, m.ID, cols)
		if err != nil {
			return dbErr(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model.Affected{AffectedRows: affected}, nil
}

// Remove soft-deletes a live member and tells the admins who did it.
func (ms *MemberService) Remove(ctx context.Context, id uint, actor *jwt.Claims) (*model.Affected, error) {
	m, err := ms.repos.Member.FindLive(ctx, id)
	if err != nil {
		return nil, dbErr(err, ErrMemberNotFound)
	}

	var affected int64
	err = ms.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		var err error
		if m.Role != model.RoleDeny {
			var n int64
			if n, err = tx.Member.Update(ctx, m.ID, repo.ResetColumns()); err != nil {
				return dbErr(err, nil)
			}
			if n == 0 {
				return ErrMemberUpdateFailed
			}
		}
		affected, err = tx.Member.SoftDelete(ctx, m.ID)
		if err != nil {
			return dbErr(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if affected > 0 {
		safe.Go(func() { ms.notifyRemoved(m, actor) })
	}
	return &model.Affected{AffectedRows: affected}, nil
}

func (ms *MemberService) notifyRemoved(m *model.Member, actor *jwt.Claims) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	var actorName string
	var actorID uint
	if actor != nil {
		actorName, actorID = actor.Username, actor.ID
	}
	text := fmt.Sprintf("%s(%d) member removed by %s(%d)", m.Username, m.ID, actorName, actorID)

	if to := ms.mailer.NotifyAddress(); to != "" {
		if _, err := ms.mailer.Send(ctx, []string{to}, removedSubject, text); err != nil {
			log.Warnw("failed to mail member removal", "memberId", m.ID, "error", err)
		}
	}
	if _, err := ms.messenger.Send(ctx, text); err != nil && !errors.Is(err, channel.ErrSlackNotConfigured) {
		log.Warnw("failed to post member removal", "memberId", m.ID, "error", err)
	}
}

// Restore brings back a soft-deleted member as unverified unless banned.
func (ms *MemberService) Restore(ctx context.Context, id uint) (*model.Affected, error) {
	m, err := ms.repos.Member.FindDeleted(ctx, id)
	if err != nil {
		return nil, dbErr(err, ErrMemberNotFound)
	}

	var affected int64
	err = ms.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		var err error
		if m.Role != model.RoleDeny {
			var n int64
			if n, err = tx.Member.Update(ctx, m.ID, repo.ResetColumns()); err != nil {
				return dbErr(err, nil)
			}
			if n == 0 {
				return ErrMemberUpdateFailed
			}
		}
		affected, err = tx.Member.Restore(ctx, m.ID)
		if err != nil {
			return dbErr(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model.Affected{AffectedRows: affected}, nil
}

func deref(ids *[]uint) []uint {
	if ids == nil {
		return nil
	}
	return *ids
}
