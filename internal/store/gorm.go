package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portal-backend/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Department").
		Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Department").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).Update("last_login_at", at).Error
}

// ReplaceOTP is an upsert keyed on email; concurrent issuers both
// succeed and the last writer's code is the live one.
func (s *gormStore) ReplaceOTP(ctx context.Context, otp *models.OTP) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code_hash", "attempts", "expires_at", "created_at"}),
	}).Create(otp).Error
}

func (s *gormStore) LiveOTP(ctx context.Context, email string, now time.Time) (*models.OTP, error) {
	var otp models.OTP
	err := s.db.WithContext(ctx).
		Where("email = ? AND expires_at > ?", email, now).First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (s *gormStore) BumpOTPAttempts(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&models.OTP{}).
		Where("id = ?", id).Update("attempts", gorm.Expr("attempts + 1")).Error
}

func (s *gormStore) ConsumeOTP(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&models.OTP{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *gormStore) DeleteExpiredOTPs(ctx context.Context, now time.Time) error {
	return s.db.WithContext(ctx).
		Where("expires_at <= ?", now).Delete(&models.OTP{}).Error
}

func (s *gormStore) CreateRefreshToken(ctx context.Context, rec *models.RefreshToken) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *gormStore) ActiveRefreshToken(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error) {
	var rec models.RefreshToken
	err := s.db.WithContext(ctx).
		Where("token = ? AND revoked_at IS NULL AND expires_at > ?", token, now).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *gormStore) RevokeRefreshToken(ctx context.Context, token string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", at).Error
}

func (s *gormStore) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	return s.db.WithContext(ctx).
		Where("expires_at <= ? OR revoked_at IS NOT NULL", now).
		Delete(&models.RefreshToken{}).Error
}

func (s *gormStore) CreateAttendance(ctx context.Context, rec *models.Attendance) error {
	err := s.db.WithContext(ctx).Create(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateDay
		}
		return err
	}
	return nil
}

func (s *gormStore) AttendanceForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*models.Attendance, error) {
	var rec models.Attendance
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *gormStore) CloseAttendance(ctx context.Context, id uuid.UUID, out time.Time, hours float64) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("id = ? AND check_out IS NULL", id).
		Updates(map[string]interface{}{"check_out": out, "work_hours": hours})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *gormStore) LeaveTypes(ctx context.Context) ([]models.LeaveType, error) {
	var types []models.LeaveType
	err := s.db.WithContext(ctx).
		Where("active = ?", true).Order("name asc").Find(&types).Error
	return types, err
}

func (s *gormStore) CreateLeaveRequest(ctx context.Context, req *models.LeaveRequest) error {
	return s.db.WithContext(ctx).Create(req).Error
}

func (s *gormStore) LeaveRequestsByUser(ctx context.Context, userID uuid.UUID) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	err := s.db.WithContext(ctx).Preload("LeaveType").
		Where("user_id = ?", userID).Order("created_at desc").Find(&requests).Error
	return requests, err
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
