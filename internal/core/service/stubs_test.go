package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

func noplog() zerolog.Logger { return zerolog.Nop() }

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID     map[string]*domain.User
	profiles map[string]*domain.Profile
	seq      []string // insertion order
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:     make(map[string]*domain.User),
		profiles: make(map[string]*domain.Profile),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.byID[user.ID] = cloneUser(user)
	r.profiles[user.ID] = &domain.Profile{UserID: user.ID}
	r.seq = append(r.seq, user.ID)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindProfile(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.seq))
	for _, id := range r.seq {
		if u, ok := r.byID[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListByRoles(_ context.Context, roles ...string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range r.seq {
		u, ok := r.byID[id]
		if !ok {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				out = append(out, cloneUser(u))
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.profiles, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int, error) {
	n := 0
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------

type stubCropRepo struct {
	byID  map[string]*domain.Crop
	seq   []string // insertion order; newest = last
	users *stubUserRepo
}

func newStubCropRepo(users *stubUserRepo) *stubCropRepo {
	return &stubCropRepo{byID: make(map[string]*domain.Crop), users: users}
}

func cloneCrop(c *domain.Crop) *domain.Crop {
	clone := *c
	return &clone
}

func (r *stubCropRepo) Create(_ context.Context, crop *domain.Crop) error {
	r.byID[crop.ID] = cloneCrop(crop)
	r.seq = append(r.seq, crop.ID)
	return nil
}

func (r *stubCropRepo) FindByID(_ context.Context, id string) (*domain.Crop, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCropNotFound
	}
	return cloneCrop(c), nil
}

// List mirrors the filters of the real Postgres repository.
func (r *stubCropRepo) List(_ context.Context, f ports.ListCropsFilter) ([]*ports.CropWithFarmer, int64, error) {
	var matched []*ports.CropWithFarmer
	for i := len(r.seq) - 1; i >= 0; i-- { // newest first
		c, ok := r.byID[r.seq[i]]
		if !ok {
			continue
		}
		if f.FarmerID != "" && c.FarmerID != f.FarmerID {
			continue
		}
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(c.Name), q) &&
				!strings.Contains(strings.ToLower(c.Description), q) &&
				!strings.Contains(strings.ToLower(c.Location), q) {
				continue
			}
		}
		view := &ports.CropWithFarmer{Crop: *cloneCrop(c)}
		if r.users != nil {
			if u, ok := r.users.byID[c.FarmerID]; ok {
				view.FarmerName = u.FullName
			}
		}
		matched = append(matched, view)
	}

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*ports.CropWithFarmer{}, total, nil
	}
	end := skip + f.Limit
	if f.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubCropRepo) Update(_ context.Context, crop *domain.Crop) error {
	if _, ok := r.byID[crop.ID]; !ok {
		return domain.ErrCropNotFound
	}
	r.byID[crop.ID] = cloneCrop(crop)
	return nil
}

func (r *stubCropRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCropNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	rows      []*domain.Order // insertion order; newest = last
	crops     *stubCropRepo
	users     *stubUserRepo
	createErr error
}

func newStubOrderRepo(crops *stubCropRepo, users *stubUserRepo) *stubOrderRepo {
	return &stubOrderRepo{crops: crops, users: users}
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *order
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *stubOrderRepo) find(id string) *domain.Order {
	for _, o := range r.rows {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o := r.find(id)
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) view(o *domain.Order) *ports.OrderView {
	v := &ports.OrderView{Order: *o}
	if c, ok := r.crops.byID[o.CropID]; ok {
		v.FarmerID = c.FarmerID
		v.CropName = c.Name
		v.ImageURL = c.ImageURL
	}
	if u, ok := r.users.byID[o.BuyerID]; ok {
		v.BuyerName = u.FullName
	}
	if o.ApprovedBy != "" {
		if u, ok := r.users.byID[o.ApprovedBy]; ok {
			v.ApproverName = u.FullName
		}
	}
	return v
}

func (r *stubOrderRepo) FindView(_ context.Context, id string) (*ports.OrderView, error) {
	o := r.find(id)
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return r.view(o), nil
}

func (r *stubOrderRepo) List(_ context.Context, farmerID string) ([]*ports.OrderView, error) {
	var out []*ports.OrderView
	for i := len(r.rows) - 1; i >= 0; i-- {
		o := r.rows[i]
		if farmerID != "" {
			c, ok := r.crops.byID[o.CropID]
			if !ok || c.FarmerID != farmerID {
				continue
			}
		}
		out = append(out, r.view(o))
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, approvedBy string) error {
	o := r.find(id)
	if o == nil {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.ApprovedBy = approvedBy
	return nil
}

// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	rows      []*domain.Message
	users     *stubUserRepo
	createErr error
}

func newStubMessageRepo(users *stubUserRepo) *stubMessageRepo {
	return &stubMessageRepo{users: users}
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *msg
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	for _, m := range r.rows {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (r *stubMessageRepo) ListForUser(_ context.Context, userID string) ([]*ports.MessageView, error) {
	var out []*ports.MessageView
	for i := len(r.rows) - 1; i >= 0; i-- {
		m := r.rows[i]
		if m.SenderID != userID && m.ReceiverID != userID {
			continue
		}
		v := &ports.MessageView{Message: *m}
		if u, ok := r.users.byID[m.SenderID]; ok {
			v.SenderName = u.FullName
		}
		if u, ok := r.users.byID[m.ReceiverID]; ok {
			v.ReceiverName = u.FullName
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, id string) error {
	for _, m := range r.rows {
		if m.ID == id {
			m.Read = true
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

// ---------------------------------------------------------------------------

type stubImageStore struct {
	saved   []string
	deleted []string
	saveErr error
}

func (s *stubImageStore) Save(_ context.Context, upload ports.ImageUpload) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	url := "/uploads/crops/" + upload.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *stubImageStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}
