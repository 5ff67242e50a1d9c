// internal/component/turret.go
package component

import "go-dungeon-defense/internal/types"

// TurretComponent хранит текущую цель турели и угол поворота "головы".
type TurretComponent struct {
	// CurrentAngle - угол на последнюю цель в радианах.
	CurrentAngle float64
	// TargetID - ID цели, на которую наведена турель.
	TargetID types.EntityID
}
