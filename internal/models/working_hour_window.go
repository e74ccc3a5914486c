package models

import "time"

// WorkingHourWindow é uma janela semanal recorrente de atendimento.
// BarberID nulo = vale para todos os barbeiros da barbearia.
// Pode haver mais de uma janela por barbeiro+weekday (ex: manhã e tarde).
type WorkingHourWindow struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index:idx_window_shop_weekday" json:"barbershop_id"`
	BarberID     *uint `gorm:"index" json:"barber_id"`

	Weekday int `gorm:"index:idx_window_shop_weekday" json:"weekday"` // 0=domingo .. 6=sábado

	StartTime string `gorm:"size:8;not null" json:"start_time"` // "HH:MM"
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
