package worker

import (
	"context"
)

// Worker - фоновый обработчик стрима
type Worker interface {
	// Start блокируется до остановки; ошибка означает, что воркер не смог работать
	Start(ctx context.Context) error

	Stop() error

	Name() string
}
