// Command slotctl считает слоты и ближайший свободный слот по YAML сценарию без БД.
//
//	slotctl slots -scenario host.yaml -date 2024-06-03
//	slotctl next -scenario host.yaml -from 2024-06-03 -days monday,friday -time morning
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "slotctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: slotctl <slots|next> [flags]")
	}

	switch args[0] {
	case "slots":
		return runSlots(args[1:], stdout, stderr)
	case "next":
		return runNext(args[1:], stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q, expected slots or next", args[0])
	}
}

func runSlots(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("slots", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scenarioPath := fs.String("scenario", "scenario.yaml", "path to scenario YAML")
	dateStr := fs.String("date", "", "date YYYY-MM-DD (required)")
	granularity := fs.Int("granularity", 0, "slot step in minutes, 0 uses scenario value")
	onlyAvailable := fs.Bool("available", false, "print only available slots")
	if err := fs.Parse(args); err != nil {
		return err
	}

	date, err := domain.ParseCivilDate(*dateStr)
	if err != nil {
		return err
	}

	env, err := loadEnv(*scenarioPath, stderr)
	if err != nil {
		return err
	}

	step := *granularity
	if step == 0 {
		step = env.Generator.Granularity()
	}

	slots, err := env.Generator.GenerateSlots(date, env.MeetingType, env.Rules, env.Bookings, step)
	if err != nil {
		return err
	}

	for _, s := range slots {
		if *onlyAvailable && !s.Available {
			continue
		}
		state := "available"
		if !s.Available {
			state = "unavailable"
		}
		fmt.Fprintf(stdout, "%-9s %s\n", s.Label, state)
	}
	fmt.Fprintf(stdout, "%d slots, %d available\n", len(slots), availability.CountAvailable(slots))
	return nil
}

func runNext(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("next", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scenarioPath := fs.String("scenario", "scenario.yaml", "path to scenario YAML")
	fromStr := fs.String("from", "", "first day YYYY-MM-DD, empty means today")
	daysStr := fs.String("days", "", "comma separated weekdays, empty means any")
	timeStr := fs.String("time", "any", "any, morning or afternoon")
	horizon := fs.Int("horizon", 0, "days to search, 0 uses scenario value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := loadEnv(*scenarioPath, stderr)
	if err != nil {
		return err
	}

	from := env.Generator.Today()
	if *fromStr != "" {
		if from, err = domain.ParseCivilDate(*fromStr); err != nil {
			return err
		}
	}

	var days domain.WeekdaySet
	if *daysStr != "" {
		if days, err = domain.ParseWeekdaySet(strings.Split(*daysStr, ",")); err != nil {
			return err
		}
	}

	filter, err := domain.ParseTimeFilter(*timeStr)
	if err != nil {
		return err
	}

	slot, found, err := env.Generator.FindNext(from, env.MeetingType, env.Rules, env.Bookings, availability.SearchOptions{
		Days:        days,
		Time:        filter,
		HorizonDays: *horizon,
	})
	if err != nil {
		return err
	}

	if !found {
		fmt.Fprintln(stdout, "no available slot within horizon")
		return nil
	}
	fmt.Fprintf(stdout, "%s %s\n", domain.CivilDateOf(slot.Start.In(env.Generator.Location())), slot.Label)
	return nil
}

func loadEnv(path string, stderr io.Writer) (*Env, error) {
	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return scenario.Build(logger.NewWriter(stderr, logger.LevelWarn))
}
