package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"launchpad_backend/internal/email"
	"launchpad_backend/internal/models"
	"launchpad_backend/internal/repositories"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Email = strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
	steps    map[string]map[string]models.ProjectStep
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects: map[string]*models.Project{},
		steps:    map[string]map[string]models.ProjectStep{},
	}
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, repositories.ErrProjectNotFound
	}
	cp := *p
	cp.Steps, _ = r.ListSteps(ctx, id)
	return &cp, nil
}

func (r *fakeProjectRepo) FindOwned(ctx context.Context, userID, id string) (*models.Project, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, repositories.ErrProjectNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	list, _ := r.ListByUser(ctx, userID)
	return int64(len(list)), nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	p, ok := r.projects[project.ID]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	p.Title = project.Title
	p.Description = project.Description
	p.Category = project.Category
	p.CurrentStep = project.CurrentStep
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, userID, id string) error {
	p, ok := r.projects[id]
	if !ok || p.UserID != userID {
		return repositories.ErrProjectNotFound
	}
	delete(r.projects, id)
	delete(r.steps, id)
	return nil
}

func (r *fakeProjectRepo) UpsertStep(ctx context.Context, step *models.ProjectStep) error {
	if r.steps[step.ProjectID] == nil {
		r.steps[step.ProjectID] = map[string]models.ProjectStep{}
	}
	r.steps[step.ProjectID][step.StepKey] = *step
	return nil
}

func (r *fakeProjectRepo) ListSteps(ctx context.Context, projectID string) ([]models.ProjectStep, error) {
	var out []models.ProjectStep
	for _, s := range r.steps[projectID] {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b models.ProjectStep) int { return strings.Compare(a.StepKey, b.StepKey) })
	return out, nil
}

type fakeSubscriptionRepo struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	subs     []*models.UserSubscription
	payments map[string]*models.PaymentTransaction
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{payments: map[string]*models.PaymentTransaction{}}
}

func (r *fakeSubscriptionRepo) FindActiveSubscription(ctx context.Context, userID string, now time.Time) (*models.UserSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *models.UserSubscription
	for _, s := range r.subs {
		if s.UserID == userID && s.IsActive(now) && (best == nil || s.EndDate.After(best.EndDate)) {
			best = s
		}
	}
	if best == nil {
		return nil, repositories.ErrSubscriptionNotFound
	}
	cp := *best
	return &cp, nil
}

func (r *fakeSubscriptionRepo) SaveSubscription(ctx context.Context, sub *models.UserSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	for i, s := range r.subs {
		if s.ID == sub.ID {
			cp := *sub
			r.subs[i] = &cp
			return nil
		}
	}
	cp := *sub
	r.subs = append(r.subs, &cp)
	return nil
}

func (r *fakeSubscriptionRepo) ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.subs {
		if s.Status == models.SubscriptionStatusActive && !now.Before(s.EndDate) {
			s.Status = models.SubscriptionStatusExpired
			n++
		}
	}
	return n, nil
}

func (r *fakeSubscriptionRepo) CreatePayment(ctx context.Context, payment *models.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *payment
	r.payments[payment.OrderID] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) FindPaymentByOrderID(ctx context.Context, orderID string) (*models.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[orderID]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeSubscriptionRepo) TransitionPayment(ctx context.Context, payment *models.PaymentTransaction, from models.PaymentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[payment.OrderID]
	if !ok || p.Status != from {
		return false, nil
	}
	p.PaymentID = payment.PaymentID
	p.Status = payment.Status
	p.PaidAt = payment.PaidAt
	return true, nil
}

// Transaction serializes callbacks the way row locks serialize concurrent UPDATEs.
func (r *fakeSubscriptionRepo) Transaction(ctx context.Context, fn func(repo repositories.SubscriptionRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

// readBarrierRepo holds every FindPaymentByOrderID caller until n of them have
// read the order, so all of them see it as pending.
type readBarrierRepo struct {
	*fakeSubscriptionRepo
	reads sync.WaitGroup
}

func newReadBarrierRepo(inner *fakeSubscriptionRepo, n int) *readBarrierRepo {
	r := &readBarrierRepo{fakeSubscriptionRepo: inner}
	r.reads.Add(n)
	return r
}

func (r *readBarrierRepo) FindPaymentByOrderID(ctx context.Context, orderID string) (*models.PaymentTransaction, error) {
	p, err := r.fakeSubscriptionRepo.FindPaymentByOrderID(ctx, orderID)
	r.reads.Done()
	r.reads.Wait()
	return p, err
}

type sentEmail struct {
	To       []string
	Template string
	Data     email.TemplateData
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeEmail) Send(e *email.Email) error { return nil }

func (f *fakeEmail) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: to, Template: templateName, Data: data})
	return nil
}

func (f *fakeEmail) Sent() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.sent)
}

type staticChecker bool

func (c staticChecker) HasActiveSubscription(ctx context.Context, userID string) (bool, error) {
	return bool(c), nil
}
