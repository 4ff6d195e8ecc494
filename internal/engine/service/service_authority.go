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

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/internal/engine/repo"
)

// AuthorityService maintains the member x (branch, menu) grant set.
type AuthorityService struct{}

func NewAuthorityService() *AuthorityService {
	return &AuthorityService{}
}

// Resolve checks the requested ids against live branches and menus and
// returns the branch-major cross product for memberID. Both lists empty
// yields no grants; exactly one empty is rejected.
func (as *AuthorityService) Resolve(ctx context.Context, tx *repo.Repositories, memberID uint, branchIDs, menuIDs []uint) ([]model.Authority, error) {
	if len(branchIDs) == 0 && len(menuIDs) == 0 {
		return nil, nil
	}
	if len(branchIDs) == 0 || len(menuIDs) == 0 {
		return nil, ErrGrantsOneSided
	}

	if !allPositive(branchIDs) {
		return nil, ErrBranchNotSelectable
	}
	n, err := tx.Branch.CountLive(ctx, branchIDs)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	if int(n) != distinct(branchIDs) {
		return nil, ErrBranchNotSelectable
	}

	if !allPositive(menuIDs) {
		return nil, ErrMenuNotSelectable
	}
	n, err = tx.Menu.CountLive(ctx, menuIDs)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	if int(n) != distinct(menuIDs) {
		return nil, ErrMenuNotSelectable
	}

	grants := make([]model.Authority, 0, len(branchIDs)*len(menuIDs))
	seen := make(map[[2]uint]struct{}, cap(grants))
	for _, b := range branchIDs {
		for _, m := range menuIDs {
			key := [2]uint{b, m}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			grants = append(grants, model.Authority{MemberID: memberID, BranchID: b, MenuID: m})
		}
	}
	return grants, nil
}

// Replace swaps the member's grants for the resolved cross product. It must
// run inside the caller's transaction.
func (as *AuthorityService) Replace(ctx context.Context, tx *repo.Repositories, memberID uint, branchIDs, menuIDs []uint) error {
	grants, err := as.Resolve(ctx, tx, memberID, branchIDs, menuIDs)
	if err != nil {
		return err
	}
	if err := tx.Authority.DeleteByMember(ctx, memberID); err != nil {
		return dbErr(err, nil)
	}
	if err := tx.Authority.CreateBatch(ctx, grants); err != nil {
		return dbErr(err, nil)
	}
	return nil
}

func allPositive(ids []uint) bool {
	for _, id := range ids {
		if id == 0 {
			return false
		}
	}
	return true
}

func distinct(ids []uint) int {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
