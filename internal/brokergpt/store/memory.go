package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kart-io/brokergpt/internal/model"
)

// memoryFactory is the in-memory fallback backend. Every entity keeps its
// own map and mutex, and its own id counter starting past the seeded rows,
// so ids handed out here never collide with each other. They are NOT
// reconciled with ids the primary backend may have assigned.
type memoryFactory struct {
	clients       *memClients
	carriers      *memCarriers
	policies      *memPolicies
	chatMessages  *memChatMessages
	recordTypes   *memRecordTypes
	clientRecords *memClientRecords
}

// NewMemoryFactory returns a fallback factory pre-populated with the demo
// dataset, so the application stays browsable with no database at all.
func NewMemoryFactory() Factory {
	f := &memoryFactory{
		clients:       &memClients{rows: map[uint64]*model.Client{}},
		carriers:      &memCarriers{rows: map[uint64]*model.Carrier{}},
		policies:      &memPolicies{rows: map[uint64]*model.Policy{}},
		chatMessages:  &memChatMessages{rows: map[uint64]*model.ChatMessage{}},
		recordTypes:   &memRecordTypes{rows: map[uint64]*model.RecordType{}},
		clientRecords: &memClientRecords{rows: map[uint64]*model.ClientRecord{}},
	}
	seedMemory(f)
	return f
}

func (f *memoryFactory) Clients() ClientStore             { return f.clients }
func (f *memoryFactory) Carriers() CarrierStore           { return f.carriers }
func (f *memoryFactory) Policies() PolicyStore            { return f.policies }
func (f *memoryFactory) ChatMessages() ChatMessageStore   { return f.chatMessages }
func (f *memoryFactory) RecordTypes() RecordTypeStore     { return f.recordTypes }
func (f *memoryFactory) ClientRecords() ClientRecordStore { return f.clientRecords }
func (f *memoryFactory) Ping(context.Context) error       { return nil }
func (f *memoryFactory) Close() error                     { return nil }

func nowMilli() int64 {
	return time.Now().UnixMilli()
}

type memClients struct {
	mu     sync.RWMutex
	rows   map[uint64]*model.Client
	nextID uint64
}

func (s *memClients) List(ctx context.Context) ([]*model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Client, 0, len(s.rows))
	for _, c := range s.rows {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memClients) Get(ctx context.Context, id uint64) (*model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *memClients) Create(ctx context.Context, client *model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client.ID == 0 {
		s.nextID++
		client.ID = s.nextID
	} else if client.ID > s.nextID {
		s.nextID = client.ID
	}
	if client.CreatedAt == 0 {
		client.CreatedAt = nowMilli()
	}
	cp := *client
	s.rows[client.ID] = &cp
	return nil
}

func (s *memClients) Update(ctx context.Context, id uint64, patch *model.Client) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	mergeClient(existing, patch)
	cp := *existing
	return &cp, nil
}

func (s *memClients) Delete(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *memClients) FindByName(ctx context.Context, name string) (*model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	var best *model.Client
	for _, c := range s.rows {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			if best == nil || c.ID < best.ID {
				best = c
			}
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func mergeClient(dst, patch *model.Client) {
	if patch.Name != "" {
		dst.Name = patch.Name
	}
	if patch.Address != "" {
		dst.Address = patch.Address
	}
	if patch.City != "" {
		dst.City = patch.City
	}
	if patch.Province != "" {
		dst.Province = patch.Province
	}
	if patch.PostalCode != "" {
		dst.PostalCode = patch.PostalCode
	}
	if patch.Phone != "" {
		dst.Phone = patch.Phone
	}
	if patch.Email != "" {
		dst.Email = patch.Email
	}
	if patch.BusinessType != "" {
		dst.BusinessType = patch.BusinessType
	}
	if patch.AnnualRevenue != 0 {
		dst.AnnualRevenue = patch.AnnualRevenue
	}
	if patch.Employees != 0 {
		dst.Employees = patch.Employees
	}
	if patch.RiskProfile != nil {
		dst.RiskProfile = patch.RiskProfile
	}
}

type memCarriers struct {
	mu     sync.RWMutex
	rows   map[uint64]*model.Carrier
	nextID uint64
}

func (s *memCarriers) List(ctx context.Context) ([]*model.Carrier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Carrier, 0, len(s.rows))
	for _, c := range s.rows {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memCarriers) Get(ctx context.Context, id uint64) (*model.Carrier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *memCarriers) Create(ctx context.Context, carrier *model.Carrier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if carrier.ID == 0 {
		s.nextID++
		carrier.ID = s.nextID
	} else if carrier.ID > s.nextID {
		s.nextID = carrier.ID
	}
	if carrier.CreatedAt == 0 {
		carrier.CreatedAt = nowMilli()
	}
	cp := *carrier
	s.rows[carrier.ID] = &cp
	return nil
}

func (s *memCarriers) Update(ctx context.Context, id uint64, patch *model.Carrier) (*model.Carrier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	mergeCarrier(existing, patch)
	cp := *existing
	return &cp, nil
}

func (s *memCarriers) Delete(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

// FindByRiskProfile applies the same predicate the primary backend applies;
// the two stores must never disagree on which carriers match a profile.
func (s *memCarriers) FindByRiskProfile(ctx context.Context, q RiskProfileQuery) ([]*model.Carrier, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterCarriersByProfile(all, q), nil
}

func mergeCarrier(dst, patch *model.Carrier) {
	if patch.Name != "" {
		dst.Name = patch.Name
	}
	if patch.ContactEmail != "" {
		dst.ContactEmail = patch.ContactEmail
	}
	if patch.ContactPhone != "" {
		dst.ContactPhone = patch.ContactPhone
	}
	if patch.Website != "" {
		dst.Website = patch.Website
	}
	if patch.Specialties != nil {
		dst.Specialties = patch.Specialties
	}
	if patch.RiskAppetite != nil {
		dst.RiskAppetite = patch.RiskAppetite
	}
	if patch.MinPremium != 0 {
		dst.MinPremium = patch.MinPremium
	}
	if patch.MaxPremium != 0 {
		dst.MaxPremium = patch.MaxPremium
	}
	if patch.Regions != nil {
		dst.Regions = patch.Regions
	}
	if patch.BusinessTypes != nil {
		dst.BusinessTypes = patch.BusinessTypes
	}
}

type memPolicies struct {
	mu     sync.RWMutex
	rows   map[uint64]*model.Policy
	nextID uint64
}

func (s *memPolicies) List(ctx context.Context) ([]*model.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Policy, 0, len(s.rows))
	for _, p := range s.rows {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memPolicies) ListByClient(ctx context.Context, clientID uint64) ([]*model.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Policy
	for _, p := range s.rows {
		if p.ClientID == clientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memPolicies) Get(ctx context.Context, id uint64) (*model.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memPolicies) Create(ctx context.Context, policy *model.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if policy.ID == 0 {
		s.nextID++
		policy.ID = s.nextID
	} else if policy.ID > s.nextID {
		s.nextID = policy.ID
	}
	if policy.CreatedAt == 0 {
		policy.CreatedAt = nowMilli()
	}
	cp := *policy
	s.rows[policy.ID] = &cp
	return nil
}

func (s *memPolicies) Update(ctx context.Context, id uint64, patch *model.Policy) (*model.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	mergePolicy(existing, patch)
	cp := *existing
	return &cp, nil
}

func (s *memPolicies) Delete(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func mergePolicy(dst, patch *model.Policy) {
	if patch.ClientID != 0 {
		dst.ClientID = patch.ClientID
	}
	if patch.CarrierID != 0 {
		dst.CarrierID = patch.CarrierID
	}
	if patch.PolicyType != "" {
		dst.PolicyType = patch.PolicyType
	}
	if patch.StartDate != "" {
		dst.StartDate = patch.StartDate
	}
	if patch.EndDate != "" {
		dst.EndDate = patch.EndDate
	}
	if patch.Premium != 0 {
		dst.Premium = patch.Premium
	}
	if patch.Status != "" {
		dst.Status = patch.Status
	}
	if patch.CoverageLimits != nil {
		dst.CoverageLimits = patch.CoverageLimits
	}
}

type memChatMessages struct {
	mu     sync.RWMutex
	rows   map[uint64]*model.ChatMessage
	nextID uint64
}

func (s *memChatMessages) ListByClient(ctx context.Context, clientID *uint64) ([]*model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.ChatMessage
	for _, m := range s.rows {
		switch {
		case clientID == nil && m.ClientID == nil:
		case clientID != nil && m.ClientID != nil && *clientID == *m.ClientID:
		default:
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memChatMessages) Create(ctx context.Context, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == 0 {
		s.nextID++
		msg.ID = s.nextID
	} else if msg.ID > s.nextID {
		s.nextID = msg.ID
	}
	if msg.CreatedAt == 0 {
		msg.CreatedAt = nowMilli()
	}
	cp := *msg
	s.rows[msg.ID] = &cp
	return nil
}

type memRecordTypes struct {
	mu     sync.RWMutex
	rows   map[uint64]*model.RecordType
	nextID uint64
}

func (s *memRecordTypes) List(ctx context.Context) ([]*model.RecordType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.RecordType, 0, len(s.rows))
	for _, t := range s.rows {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memRecordTypes) Get(ctx context.Context, id uint64) (*model.RecordType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *memRecordTypes) Create(ctx context.Context, rt *model.RecordType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rt.ID == 0 {
		s.nextID++
		rt.ID = s.nextID
	} else if rt.ID > s.nextID {
		s.nextID = rt.ID
	}
	cp := *rt
	s.rows[rt.ID] = &cp
	return nil
}

type memClientRecords struct {
	mu     sync.RWMutex
	rows   map[uint64]*model.ClientRecord
	nextID uint64
}

func (s *memClientRecords) ListByClient(ctx context.Context, clientID uint64) ([]*model.ClientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.ClientRecord
	for _, r := range s.rows {
		if r.ClientID == clientID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memClientRecords) Get(ctx context.Context, id uint64) (*model.ClientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *memClientRecords) Create(ctx context.Context, record *model.ClientRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == 0 {
		s.nextID++
		record.ID = s.nextID
	} else if record.ID > s.nextID {
		s.nextID = record.ID
	}
	if record.CreatedAt == 0 {
		record.CreatedAt = nowMilli()
	}
	cp := *record
	s.rows[record.ID] = &cp
	return nil
}

func (s *memClientRecords) Update(ctx context.Context, id uint64, patch *model.ClientRecord) (*model.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	if patch.ClientID != 0 {
		existing.ClientID = patch.ClientID
	}
	if patch.Type != "" {
		existing.Type = patch.Type
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.Value != "" {
		existing.Value = patch.Value
	}
	if patch.Date != "" {
		existing.Date = patch.Date
	}
	cp := *existing
	return &cp, nil
}

func (s *memClientRecords) Delete(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}
