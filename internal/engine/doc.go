// Package engine owns a running simulation.
//
// An [Engine] holds the ordered body set and one trail buffer per body. It
// exposes a single mutating entry point, [Engine.Tick], which advances the
// bodies by one fixed step and records each body's projected position:
//
//	eng := engine.New(engine.WithDt(43200))
//	if err := eng.Init(sc); err != nil {
//	    return err
//	}
//	for i := 0; i < 1000; i++ {
//	    eng.Tick()
//	}
//	bodies := eng.Bodies()
//
// The engine has no clock and no paused state. Whoever owns it decides when
// to call Tick; pausing is simply not calling it.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Tick and the read accessors must be
// serialised by the caller. Accessors return copies that stay valid after
// later ticks.
package engine
