package service_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/session"
	"github.com/shopspring/decimal"
)

// In-memory store fakes backing the service tests. Behavior mirrors the
// gorm repositories closely enough for the service-layer contracts:
// sentinel errors, ownership scoping and the list orderings.

type fakeUserStore struct {
	users  map[uint]*models.User
	nextID uint

	// seeded records the starter categories handed to Create per user
	seeded map[uint][]models.Category
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[uint]*models.User),
		nextID: 1,
		seeded: make(map[uint][]models.Category),
	}
}

func (s *fakeUserStore) Create(user *models.User, categories []models.Category) error {
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	s.seeded[user.ID] = categories
	return nil
}

func (s *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetActiveByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email && u.IsActive {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByUsername(username string, excludeID uint) (bool, error) {
	for _, u := range s.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) ExistsByEmail(email string, excludeID uint) (bool, error) {
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Update(user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(id uint, at time.Time) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

func (s *fakeUserStore) List(q repository.UserListQuery) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (s *fakeUserStore) CountAll() (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) CountActive() (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) CountCreatedSince(since time.Time) (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) TopSpenders(limit int) ([]repository.UserSpend, error) {
	return nil, nil
}

func (s *fakeUserStore) DeleteWithOwnedData(userID uint, purgeAdminLogs bool) error {
	if _, ok := s.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

type fakeExpenseStore struct {
	expenses map[uint]*models.Expense
	nextID   uint
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[uint]*models.Expense), nextID: 1}
}

func (s *fakeExpenseStore) Create(expense *models.Expense) error {
	expense.ID = s.nextID
	s.nextID++
	expense.CreatedAt = time.Now()
	copied := *expense
	s.expenses[expense.ID] = &copied
	return nil
}

func (s *fakeExpenseStore) GetByIDAndUserID(id, userID uint) (*models.Expense, error) {
	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return nil, repository.ErrExpenseNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *fakeExpenseStore) Update(expense *models.Expense) error {
	if _, ok := s.expenses[expense.ID]; !ok {
		return repository.ErrExpenseNotFound
	}
	copied := *expense
	s.expenses[expense.ID] = &copied
	return nil
}

func (s *fakeExpenseStore) Delete(id, userID uint) error {
	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return repository.ErrExpenseNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *fakeExpenseStore) ListByUser(userID uint, filter repository.ListFilter) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range s.expenses {
		if e.UserID != userID {
			continue
		}
		if filter.Category != "" && filter.Category != "All" && e.Category != filter.Category {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(e.Title), needle) &&
				!strings.Contains(strings.ToLower(e.Description), needle) &&
				!strings.Contains(strings.ToLower(e.Category), needle) {
				continue
			}
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *fakeExpenseStore) ListByUserFromDate(userID uint, from time.Time) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range s.expenses {
		if e.UserID == userID && !e.Date.Before(from) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeExpenseStore) RecentByUser(userID uint, limit int) ([]models.Expense, error) {
	out, _ := s.ListByUser(userID, repository.ListFilter{})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeExpenseStore) CountByUserID(userID uint) (int64, error) {
	var n int64
	for _, e := range s.expenses {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeExpenseStore) CountByUserAndCategory(userID uint, category string) (int64, error) {
	var n int64
	for _, e := range s.expenses {
		if e.UserID == userID && e.Category == category {
			n++
		}
	}
	return n, nil
}

func (s *fakeExpenseStore) CountAll() (int64, error) {
	return int64(len(s.expenses)), nil
}

func (s *fakeExpenseStore) SumAll() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range s.expenses {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (s *fakeExpenseStore) SumCreatedSince(since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range s.expenses {
		if e.CreatedAt.After(since) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (s *fakeExpenseStore) CategoryStats(userID uint) ([]repository.CategoryStat, error) {
	byCategory := make(map[string]*repository.CategoryStat)
	for _, e := range s.expenses {
		if userID != 0 && e.UserID != userID {
			continue
		}
		stat, ok := byCategory[e.Category]
		if !ok {
			stat = &repository.CategoryStat{Category: e.Category, Total: decimal.Zero}
			byCategory[e.Category] = stat
		}
		stat.Count++
		stat.Total = stat.Total.Add(e.Amount)
	}
	var out []repository.CategoryStat
	for _, stat := range byCategory {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

type fakeBudgetStore struct {
	budgets map[uint]*models.Budget
	nextID  uint
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{budgets: make(map[uint]*models.Budget), nextID: 1}
}

func (s *fakeBudgetStore) GetByUserID(userID uint) (*models.Budget, error) {
	b, ok := s.budgets[userID]
	if !ok {
		return nil, repository.ErrBudgetNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *fakeBudgetStore) Set(userID uint, amount decimal.Decimal) error {
	if b, ok := s.budgets[userID]; ok {
		b.Amount = amount
		b.UpdatedAt = time.Now()
		return nil
	}
	s.budgets[userID] = &models.Budget{ID: s.nextID, UserID: userID, Amount: amount}
	s.nextID++
	return nil
}

func (s *fakeBudgetStore) CountByUserID(userID uint) (int64, error) {
	if _, ok := s.budgets[userID]; ok {
		return 1, nil
	}
	return 0, nil
}

type fakeCategoryStore struct {
	categories map[uint]*models.Category
	nextID     uint
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[uint]*models.Category), nextID: 1}
}

func (s *fakeCategoryStore) add(userID uint, name string) *models.Category {
	c := &models.Category{ID: s.nextID, UserID: userID, Name: name}
	s.nextID++
	s.categories[c.ID] = c
	return c
}

func (s *fakeCategoryStore) Create(category *models.Category) error {
	for _, c := range s.categories {
		if c.UserID == category.UserID && c.Name == category.Name {
			return repository.ErrCategoryExists
		}
	}
	category.ID = s.nextID
	s.nextID++
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *fakeCategoryStore) GetByIDAndUserID(id, userID uint) (*models.Category, error) {
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *fakeCategoryStore) ListByUser(userID uint) ([]models.Category, error) {
	var out []models.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeCategoryStore) NamesByUser(userID uint) ([]string, error) {
	categories, _ := s.ListByUser(userID)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

func (s *fakeCategoryStore) ExistsByUserAndName(userID uint, name string) (bool, error) {
	for _, c := range s.categories {
		if c.UserID == userID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCategoryStore) Delete(id, userID uint) error {
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return repository.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *fakeCategoryStore) CountByUserID(userID uint) (int64, error) {
	var n int64
	for _, c := range s.categories {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeAdminLogStore struct {
	entries []models.AdminLog
}

func (s *fakeAdminLogStore) Create(entry *models.AdminLog) error {
	entry.ID = uint(len(s.entries) + 1)
	entry.CreatedAt = time.Now()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *fakeAdminLogStore) RecentByAdmin(adminID uint, limit int) ([]models.AdminLog, error) {
	var out []models.AdminLog
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if s.entries[i].AdminID == adminID {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

type fakeSessionManager struct {
	sessions map[string]session.Data
	nextID   int
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{sessions: make(map[string]session.Data)}
}

func (s *fakeSessionManager) Create(ctx context.Context, data session.Data) (string, error) {
	s.nextID++
	token := fmt.Sprintf("token-%d", s.nextID)
	s.sessions[token] = data
	return token, nil
}

func (s *fakeSessionManager) Update(ctx context.Context, token string, data session.Data) error {
	s.sessions[token] = data
	return nil
}

func (s *fakeSessionManager) Delete(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}
