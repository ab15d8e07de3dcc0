package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/services"
)

func (a *App) Grades(ctx context.Context) error {
	grades, err := a.curriculumService.Grades(ctx)
	if err != nil {
		return err
	}
	for _, g := range grades {
		fmt.Fprintln(a.out, " -", g)
	}
	return nil
}

// Curriculum shows the terms and subjects of a grade: curriculum [grade].
// Without a grade the user's own curriculum is shown.
func (a *App) Curriculum(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cur, err := a.curriculumService.UserCurriculum(ctx)
		if err != nil {
			return err
		}
		st := cur.Structure
		if st.Grade == "" {
			st.Grade = cur.Grade
		}
		a.printStructure(&st)
		return nil
	}

	st, err := a.curriculumService.Structure(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printStructure(st)
	return nil
}

func (a *App) printStructure(st *models.GradeStructure) {
	fmt.Fprintln(a.out, st.Grade)
	for _, term := range st.TermNames() {
		fmt.Fprintf(a.out, "  %s: %s\n", term, strings.Join(st.Terms[term], ", "))
	}
}

// Concepts lists the concepts of a subject:
// concepts <grade> <term> <subject> [filter]. Missing selections are prompted
// for.
func (a *App) Concepts(ctx context.Context, args []string) error {
	sel := make([]string, 3)
	copy(sel, args)
	for i, prompt := range []string{"Grade", "Term", "Subject"} {
		if sel[i] != "" {
			continue
		}
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		sel[i] = v
	}
	filter := ""
	if len(args) > 3 {
		filter = strings.Join(args[3:], " ")
	}

	list, err := a.curriculumService.Concepts(ctx, sel[0], sel[1], sel[2])
	if err != nil {
		return err
	}
	if list.Generating {
		fmt.Fprintln(a.out, "Concepts for this subject are still being generated. Try again shortly.")
		return nil
	}

	concepts := services.FilterConcepts(list.Concepts, filter)
	if len(concepts) == 0 {
		fmt.Fprintln(a.out, "No concepts found")
		return nil
	}
	for _, c := range concepts {
		fmt.Fprintf(a.out, "* %s\n", c.Name)
		if c.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", c.Description)
		}
		for _, sc := range c.SubConcepts {
			fmt.Fprintf(a.out, "    - %s\n", sc.Name)
		}
		for _, ex := range c.Examples {
			fmt.Fprintf(a.out, "    e.g. %s\n", ex)
		}
	}
	return nil
}
