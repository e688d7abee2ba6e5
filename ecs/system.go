package ecs

// System represents a behavior that runs against the World once per stage pass.
//
// A system struct may declare exported Query, Res, ResMut and Deferred fields;
// the Scheduler resolves them before every Execute and releases them afterwards.
// Plain functions become systems through Func0..Func4 and Exclusive.
type System interface {
	Execute(frame *UpdateFrame)
}
