package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type WitchTag struct{}

var WitchTagComponent = NewComponent[WitchTag]()

type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()
