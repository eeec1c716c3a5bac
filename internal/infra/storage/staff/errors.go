package staff

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда у сотрудника нет настроек доступности
	ErrAvailabilityNotFound = errors.New("staff.repository: staff availability not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("staff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("staff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("staff.repository: failed to scan row")
)
