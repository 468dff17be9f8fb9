package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"portal-backend/internal/models"
)

// MemStore is a mutex-guarded in-memory Store with the same atomicity
// guarantees as the database-backed one. It backs the unit tests.
type MemStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	otps       map[string]*models.OTP
	nextOTPID  uint
	refresh    map[string]*models.RefreshToken
	attendance map[uuid.UUID]*models.Attendance
	leaveTypes []models.LeaveType
	leaveReqs  []models.LeaveRequest
}

func NewMem() *MemStore {
	return &MemStore{
		users:      make(map[uuid.UUID]*models.User),
		otps:       make(map[string]*models.OTP),
		refresh:    make(map[string]*models.RefreshToken),
		attendance: make(map[uuid.UUID]*models.Attendance),
	}
}

// AddUser registers a user, assigning an id if absent.
func (s *MemStore) AddUser(user *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	return user
}

func (s *MemStore) AddLeaveType(t models.LeaveType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.leaveTypes = append(s.leaveTypes, t)
}

func (s *MemStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		stamp := at
		user.LastLoginAt = &stamp
	}
	return nil
}

func (s *MemStore) ReplaceOTP(ctx context.Context, otp *models.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOTPID++
	otp.ID = s.nextOTPID
	copied := *otp
	s.otps[otp.Email] = &copied
	return nil
}

func (s *MemStore) LiveOTP(ctx context.Context, email string, now time.Time) (*models.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	otp, ok := s.otps[email]
	if !ok || !otp.ExpiresAt.After(now) {
		return nil, ErrNotFound
	}
	copied := *otp
	return &copied, nil
}

func (s *MemStore) BumpOTPAttempts(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, otp := range s.otps {
		if otp.ID == id {
			otp.Attempts++
			return nil
		}
	}
	return nil
}

func (s *MemStore) ConsumeOTP(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, otp := range s.otps {
		if otp.ID == id {
			delete(s.otps, email)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) DeleteExpiredOTPs(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, otp := range s.otps {
		if !otp.ExpiresAt.After(now) {
			delete(s.otps, email)
		}
	}
	return nil
}

func (s *MemStore) CreateRefreshToken(ctx context.Context, rec *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	copied := *rec
	s.refresh[rec.Token] = &copied
	return nil
}

func (s *MemStore) ActiveRefreshToken(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.refresh[token]
	if !ok || rec.RevokedAt != nil || !rec.ExpiresAt.After(now) {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *MemStore) RevokeRefreshToken(ctx context.Context, token string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.refresh[token]; ok && rec.RevokedAt == nil {
		stamp := at
		rec.RevokedAt = &stamp
	}
	return nil
}

func (s *MemStore) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, rec := range s.refresh {
		if rec.RevokedAt != nil || !rec.ExpiresAt.After(now) {
			delete(s.refresh, token)
		}
	}
	return nil
}

func (s *MemStore) CreateAttendance(ctx context.Context, rec *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.attendance {
		if existing.UserID == rec.UserID && existing.Date.Equal(rec.Date) {
			return ErrDuplicateDay
		}
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	copied := *rec
	s.attendance[rec.ID] = &copied
	return nil
}

func (s *MemStore) AttendanceForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.attendance {
		if rec.UserID == userID && rec.Date.Equal(day) {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CloseAttendance(ctx context.Context, id uuid.UUID, out time.Time, hours float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.attendance[id]
	if !ok || rec.CheckOut != nil {
		return false, nil
	}
	stamp := out
	rec.CheckOut = &stamp
	worked := hours
	rec.WorkHours = &worked
	return true, nil
}

func (s *MemStore) LeaveTypes(ctx context.Context) ([]models.LeaveType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]models.LeaveType, 0, len(s.leaveTypes))
	for _, t := range s.leaveTypes {
		if t.Active {
			types = append(types, t)
		}
	}
	return types, nil
}

func (s *MemStore) CreateLeaveRequest(ctx context.Context, req *models.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = time.Now()
	s.leaveReqs = append(s.leaveReqs, *req)
	return nil
}

func (s *MemStore) LeaveRequestsByUser(ctx context.Context, userID uuid.UUID) ([]models.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var requests []models.LeaveRequest
	for i := len(s.leaveReqs) - 1; i >= 0; i-- {
		if s.leaveReqs[i].UserID == userID {
			requests = append(requests, s.leaveReqs[i])
		}
	}
	return requests, nil
}

func (s *MemStore) Ping(ctx context.Context) error {
	return nil
}
