package room

import (
	"context"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"gorm.io/gorm"
)

// StatusCounts aggregates rooms per status for dashboards.
type StatusCounts struct {
	Total        int64
	Available    int64
	Occupied     int64
	Maintenance  int64
	OutOfService int64
}

// Repository wires together room persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByNumber loads a room by its natural key.
func (r *Repository) FindByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "room_number = ?", roomNumber).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a new room.
func (r *Repository) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// Update persists the mutable room fields.
func (r *Repository) Update(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("room_number = ?", room.RoomNumber).
		Updates(map[string]any{
			"room_name":       room.RoomName,
			"room_type":       room.RoomType,
			"capacity":        room.Capacity,
			"price_per_night": room.PricePerNight,
			"amenities":       room.Amenities,
			"description":     room.Description,
		}).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes the room; FK cascades clean up bookings and their children.
func (r *Repository) Delete(ctx context.Context, roomNumber string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Room{}, "room_number = ?", roomNumber)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetStatus writes the room status unconditionally, reporting whether a row
// matched.
func (r *Repository) SetStatus(ctx context.Context, roomNumber string, status enums.RoomStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("room_number = ?", roomNumber).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClaimForOccupancy atomically flips an available room to occupied. Zero rows
// affected means the room was not available, which closes the double check-in
// race under concurrent requests.
func (r *Repository) ClaimForOccupancy(ctx context.Context, roomNumber string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		"UPDATE rooms SET status = ? WHERE room_number = ? AND lower(status) = ?",
		enums.RoomStatusOccupied, roomNumber, string(enums.RoomStatusAvailable),
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List returns all rooms ordered by room number.
func (r *Repository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListByStatus returns rooms with the given status ordered by room number.
func (r *Repository) ListByStatus(ctx context.Context, status enums.RoomStatus) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// CountByStatus aggregates room totals per status.
func (r *Repository) CountByStatus(ctx context.Context) (*StatusCounts, error) {
	type row struct {
		Status enums.RoomStatus
		N      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := &StatusCounts{}
	for _, item := range rows {
		counts.Total += item.N
		switch item.Status {
		case enums.RoomStatusAvailable:
			counts.Available = item.N
		case enums.RoomStatusOccupied:
			counts.Occupied = item.N
		case enums.RoomStatusMaintenance:
			counts.Maintenance = item.N
		case enums.RoomStatusOutOfService:
			counts.OutOfService = item.N
		}
	}
	return counts, nil
}
