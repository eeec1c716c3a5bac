package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID          int64     // ID пользователя (для логирования, не влияет на результат)
	OrganizationID  int64     // ID организации
	StaffID         int64     // ID грумера
	Date            time.Time // Дата (без времени), читается в часовом поясе организации
	DurationMinutes int       // Требуемая длительность записи
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	StaffID         int64     // ID грумера
	DurationMinutes int       // Длительность, под которую подбирались слоты
	Timezone        string    // Часовой пояс организации
	Slots           []domain.AvailableSlot // Слоты в хронологическом порядке
}
