package dump_test

import (
	"fmt"

	"github.com/matzehuels/ecsdump/pkg/dump"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/ecs/memory"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/render/schedule"
)

func ExampleScheduleGraphDOT() {
	app := memory.NewApp()
	s := memory.NewSchedule("Update")
	input := s.AddSystem("input", ecs.Access{})
	movement := s.AddSystem("movement", ecs.Access{})
	s.Before(input, movement)
	app.Main().AddSchedule(s)

	settings := schedule.DefaultSettings()
	out, err := dump.ScheduleGraphDOT(app, "Update", settings)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(out) > 0)

	_, err = dump.ScheduleGraphDOT(app, "Render", settings)
	fmt.Println(errors.UserMessage(err))
	// Output:
	// true
	// schedule doesn't exist: Render
}
