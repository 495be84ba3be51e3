package formula

import (
	"math"
	"time"
)

func (e *Engine) registerDateTime() {
	e.register(&Function{
		Name: "DATE", MinArgs: 3, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			year, err := toInt(args[0])
			if err != nil {
				return err
			}
			month, err := toInt(args[1])
			if err != nil {
				return err
			}
			day, err := toInt(args[2])
			if err != nil {
				return err
			}
			serial, derr := dateToSerial(year, month, day)
			if derr != nil {
				return derr
			}
			return serial
		},
	})

	e.register(&Function{
		Name: "TIME", MinArgs: 3, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			hour, err := toInt(args[0])
			if err != nil {
				return err
			}
			minute, err := toInt(args[1])
			if err != nil {
				return err
			}
			second, err := toInt(args[2])
			if err != nil {
				return err
			}
			frac, terr := timeFraction(hour, minute, second)
			if terr != nil {
				return terr
			}
			return frac
		},
	})

	calendarField := func(name string, field func(t time.Time) float64) *Function {
		return &Function{
			Name: name, MinArgs: 1, MaxArgs: 1,
			Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
				serial, err := numberArg(args[0])
				if err != nil {
					return err
				}
				t, serr := serialToTime(serial)
				if serr != nil {
					return serr
				}
				return field(t)
			},
		}
	}

	e.register(calendarField("DAY", func(t time.Time) float64 { return float64(t.Day()) }))
	e.register(calendarField("MONTH", func(t time.Time) float64 { return float64(t.Month()) }))
	e.register(calendarField("YEAR", func(t time.Time) float64 { return float64(t.Year()) }))

	timeField := func(name string, field func(seconds float64) float64) *Function {
		return &Function{
			Name: name, MinArgs: 1, MaxArgs: 1,
			Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
				serial, err := numberArg(args[0])
				if err != nil {
					return err
				}
				if serial < 0 {
					return errNum(name + ": negative serial")
				}
				return field(timeOfDay(serial))
			},
		}
	}

	e.register(timeField("HOUR", func(s float64) float64 { return math.Floor(s / 3600) }))
	e.register(timeField("MINUTE", func(s float64) float64 { return math.Mod(math.Floor(s/60), 60) }))
	e.register(timeField("SECOND", func(s float64) float64 { return math.Mod(s, 60) }))

	// WEEKDAY with the default return type: 1 = Sunday .. 7 = Saturday
	e.register(&Function{
		Name: "WEEKDAY", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			serial, err := numberArg(args[0])
			if err != nil {
				return err
			}
			t, serr := serialToTime(math.Floor(serial))
			if serr != nil {
				return serr
			}
			returnType := int64(1)
			if len(args) == 2 {
				returnType, err = toInt(args[1])
				if err != nil {
					return err
				}
			}
			sunday := float64(t.Weekday()) + 1 // time.Sunday is 0
			switch returnType {
			case 1:
				return sunday
			case 2:
				// 1 = Monday .. 7 = Sunday
				return math.Mod(sunday+5, 7) + 1
			case 3:
				// 0 = Monday .. 6 = Sunday
				return math.Mod(sunday+5, 7)
			default:
				return errNum("WEEKDAY: unsupported return type")
			}
		},
	})

	e.register(&Function{
		Name: "DAYS", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			end, err := numberArg(args[0])
			if err != nil {
				return err
			}
			start, err := numberArg(args[1])
			if err != nil {
				return err
			}
			return math.Floor(end) - math.Floor(start)
		},
	})

	e.register(&Function{
		Name: "DAYS360", MinArgs: 2, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			startSerial, err := numberArg(args[0])
			if err != nil {
				return err
			}
			endSerial, err := numberArg(args[1])
			if err != nil {
				return err
			}
			european := false
			if len(args) == 3 {
				european = isTruthy(args[2])
			}
			start, serr := serialToTime(math.Floor(startSerial))
			if serr != nil {
				return serr
			}
			end, serr := serialToTime(math.Floor(endSerial))
			if serr != nil {
				return serr
			}
			if european {
				return float64(days360EU(start, end))
			}
			return float64(days360US(start, end))
		},
	})

	e.register(&Function{
		Name: "YEARFRAC", MinArgs: 2, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			startSerial, err := numberArg(args[0])
			if err != nil {
				return err
			}
			endSerial, err := numberArg(args[1])
			if err != nil {
				return err
			}
			basis := int64(0)
			if len(args) == 3 {
				basis, err = toInt(args[2])
				if err != nil {
					return err
				}
			}
			start, serr := serialToTime(math.Floor(startSerial))
			if serr != nil {
				return serr
			}
			end, serr := serialToTime(math.Floor(endSerial))
			if serr != nil {
				return serr
			}
			frac, ferr := yearFraction(start, end, basis)
			if ferr != nil {
				return errNum("YEARFRAC: " + ferr.Error())
			}
			return frac
		},
	})

	// NOW and TODAY are volatile: fresh on every invocation, never
	// memoized above this engine
	e.register(&Function{
		Name: "NOW", MinArgs: 0, MaxArgs: 0, Volatile: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			now := e.clock.Now()
			return float64(now.UnixMilli()-epochMs) / msPerDay
		},
	})

	e.register(&Function{
		Name: "TODAY", MinArgs: 0, MaxArgs: 0, Volatile: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			now := e.clock.Now()
			midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			return math.Floor(float64(midnight.UnixMilli()-epochMs) / msPerDay)
		},
	})
}
