package service

import (
	"context"
	"sort"
	"time"

	"github.com/jeanmvides21/academic-back/internal/model"
)

// In-memory заглушки хранилищ для сервисных тестов

type mockUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[int64]*model.User)}
}

func (m *mockUserStore) add(user model.User) *model.User {
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	m.users[user.ID] = &user
	return &user
}

func (m *mockUserStore) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserStore) GetAll(_ context.Context) ([]*model.User, error) {
	var users []*model.User
	for _, user := range m.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *mockUserStore) Update(_ context.Context, user *model.User) error {
	stored := *user
	stored.UpdatedAt = time.Now()
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserStore) CedulaInUse(_ context.Context, cedula string, excludeID int64) (bool, error) {
	for _, user := range m.users {
		if user.Cedula == cedula && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStore) EmailInUse(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, user := range m.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type mockSubjectStore struct {
	subjects map[int64]*model.Subject
	slots    *mockSlotStore
	nextID   int64
}

func newMockSubjectStore() *mockSubjectStore {
	return &mockSubjectStore{subjects: make(map[int64]*model.Subject)}
}

func (m *mockSubjectStore) add(subject model.Subject) *model.Subject {
	if subject.ID == 0 {
		m.nextID++
		subject.ID = m.nextID
	} else if subject.ID > m.nextID {
		m.nextID = subject.ID
	}
	m.subjects[subject.ID] = &subject
	return &subject
}

func (m *mockSubjectStore) Create(_ context.Context, subject *model.Subject) error {
	m.nextID++
	subject.ID = m.nextID
	subject.CreatedAt = time.Now()
	subject.UpdatedAt = subject.CreatedAt
	stored := *subject
	m.subjects[subject.ID] = &stored
	return nil
}

func (m *mockSubjectStore) GetByID(_ context.Context, id int64) (*model.Subject, error) {
	subject, ok := m.subjects[id]
	if !ok {
		return nil, nil
	}
	copied := *subject
	return &copied, nil
}

func (m *mockSubjectStore) GetAll(_ context.Context) ([]*model.Subject, error) {
	var subjects []*model.Subject
	for _, subject := range m.subjects {
		copied := *subject
		subjects = append(subjects, &copied)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (m *mockSubjectStore) Update(_ context.Context, subject *model.Subject) error {
	stored := *subject
	stored.UpdatedAt = time.Now()
	m.subjects[subject.ID] = &stored
	return nil
}

func (m *mockSubjectStore) Delete(_ context.Context, id int64) error {
	delete(m.subjects, id)
	return nil
}

func (m *mockSubjectStore) NameInUse(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, subject := range m.subjects {
		if subject.Name == name && subject.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubjectStore) HasSlots(_ context.Context, id int64) (bool, error) {
	if m.slots == nil {
		return false, nil
	}
	for _, slot := range m.slots.slots {
		if slot.SubjectID == id {
			return true, nil
		}
	}
	return false, nil
}

type mockSlotStore struct {
	slots       map[int64]*model.ScheduleSlot
	users       *mockUserStore
	subjects    *mockSubjectStore
	nextID      int64
	updateCalls int
}

func newMockSlotStore(users *mockUserStore, subjects *mockSubjectStore) *mockSlotStore {
	store := &mockSlotStore{
		slots:    make(map[int64]*model.ScheduleSlot),
		users:    users,
		subjects: subjects,
	}
	subjects.slots = store
	return store
}

func (m *mockSlotStore) add(slot model.ScheduleSlot) *model.ScheduleSlot {
	if slot.ID == 0 {
		m.nextID++
		slot.ID = m.nextID
	} else if slot.ID > m.nextID {
		m.nextID = slot.ID
	}
	m.slots[slot.ID] = &slot
	return &slot
}

func (m *mockSlotStore) Create(_ context.Context, slot *model.ScheduleSlot) error {
	m.nextID++
	slot.ID = m.nextID
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt
	stored := *slot
	m.slots[slot.ID] = &stored
	return nil
}

func (m *mockSlotStore) GetByID(_ context.Context, id int64) (*model.ScheduleSlot, error) {
	slot, ok := m.slots[id]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (m *mockSlotStore) GetByUserAndDay(_ context.Context, userID int64, day model.Weekday, excludeID int64) ([]*model.DaySlot, error) {
	var result []*model.DaySlot
	for _, slot := range m.slots {
		if slot.UserID != userID || slot.Day != day || slot.ID == excludeID {
			continue
		}
		daySlot := &model.DaySlot{ScheduleSlot: *slot}
		if subject, ok := m.subjects.subjects[slot.SubjectID]; ok {
			daySlot.SubjectName = subject.Name
		}
		result = append(result, daySlot)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockSlotStore) CountByUserAndSubject(_ context.Context, userID, subjectID, excludeID int64) (int, error) {
	count := 0
	for _, slot := range m.slots {
		if slot.UserID == userID && slot.SubjectID == subjectID && slot.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (m *mockSlotStore) Update(_ context.Context, id int64, patch model.SlotPatch) error {
	m.updateCalls++
	slot, ok := m.slots[id]
	if !ok {
		return nil
	}
	if patch.Day != nil {
		slot.Day = *patch.Day
	}
	if patch.StartTime != nil {
		slot.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		slot.EndTime = *patch.EndTime
	}
	if patch.UserID != nil {
		slot.UserID = *patch.UserID
	}
	if patch.SubjectID != nil {
		slot.SubjectID = *patch.SubjectID
	}
	slot.UpdatedAt = time.Now()
	return nil
}

func (m *mockSlotStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.slots[id]; !ok {
		return false, nil
	}
	delete(m.slots, id)
	return true, nil
}

func (m *mockSlotStore) view(slot *model.ScheduleSlot) *model.SlotView {
	view := &model.SlotView{ScheduleSlot: *slot}
	if user, ok := m.users.users[slot.UserID]; ok {
		view.User = &model.UserSnapshot{
			ID:     user.ID,
			Cedula: user.Cedula,
			Name:   user.Name,
			Email:  user.Email,
			Phone:  user.Phone,
			Role:   user.Role,
		}
	}
	if subject, ok := m.subjects.subjects[slot.SubjectID]; ok {
		view.Subject = &model.SubjectSnapshot{
			ID:                 subject.ID,
			Name:               subject.Name,
			Description:        subject.Description,
			MaxSessionsPerWeek: subject.MaxSessionsPerWeek,
		}
	}
	return view
}

func (m *mockSlotStore) GetView(_ context.Context, id int64) (*model.SlotView, error) {
	slot, ok := m.slots[id]
	if !ok {
		return nil, nil
	}
	return m.view(slot), nil
}

func (m *mockSlotStore) sortedViews(filter func(*model.ScheduleSlot) bool) []*model.SlotView {
	var views []*model.SlotView
	for _, slot := range m.slots {
		if filter == nil || filter(slot) {
			views = append(views, m.view(slot))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Day != views[j].Day {
			return views[i].Day.Index() < views[j].Day.Index()
		}
		return views[i].StartTime < views[j].StartTime
	})
	return views
}

func (m *mockSlotStore) ListViews(_ context.Context) ([]*model.SlotView, error) {
	return m.sortedViews(nil), nil
}

func (m *mockSlotStore) ListViewsByUser(_ context.Context, userID int64) ([]*model.SlotView, error) {
	return m.sortedViews(func(slot *model.ScheduleSlot) bool { return slot.UserID == userID }), nil
}

// mockTxScope выполняет fn без транзакции
type mockTxScope struct{}

func (mockTxScope) WithinUserLock(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
