// internal/component/wave.go
package component

// SpawnEntry — запланированное появление врага внутри волны.
type SpawnEntry struct {
	EnemyID string
	Delay   float64 // секунд от начала волны
}

// Wave — состояние планировщика волн
type Wave struct {
	Number    int          // Номер текущей (или последней) волны
	Total     int          // Всего волн в забеге
	Queue     []SpawnEntry // Оставшиеся появления, по неубыванию Delay
	Elapsed   float64      // Время с начала волны
	Countdown float64      // Таймер до следующей волны (в фазе Idle)
	Phase     RunPhase
	Boss      bool // текущая волна — волна босса
}
