// Package curriculum loads course trees from YAML or spreadsheet sources and
// writes them through the learning repos.
package curriculum

import (
	"fmt"
	"strings"

	types "github.com/yungbote/lingo-backend/internal/domain"
)

type Curriculum struct {
	Courses []CourseDef `yaml:"courses"`
}

type CourseDef struct {
	Title    string    `yaml:"title"`
	ImageSrc string    `yaml:"image_src"`
	Units    []UnitDef `yaml:"units"`
}

type UnitDef struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Lessons     []LessonDef `yaml:"lessons"`
}

type LessonDef struct {
	Title      string         `yaml:"title"`
	Challenges []ChallengeDef `yaml:"challenges"`
}

type ChallengeDef struct {
	Type     string      `yaml:"type"`
	Question string      `yaml:"question"`
	Options  []OptionDef `yaml:"options"`
}

type OptionDef struct {
	Text     string `yaml:"text"`
	Correct  bool   `yaml:"correct"`
	ImageSrc string `yaml:"image_src"`
	AudioSrc string `yaml:"audio_src"`
}

// Validate checks the shape the graders rely on: every challenge has a known
// type and exactly one correct option.
func (c *Curriculum) Validate() error {
	if c == nil || len(c.Courses) == 0 {
		return fmt.Errorf("curriculum has no courses")
	}
	seen := map[string]bool{}
	for ci, course := range c.Courses {
		title := strings.TrimSpace(course.Title)
		if title == "" {
			return fmt.Errorf("course %d: title required", ci+1)
		}
		if seen[strings.ToLower(title)] {
			return fmt.Errorf("course %q: duplicate title", title)
		}
		seen[strings.ToLower(title)] = true
		for ui, unit := range course.Units {
			if strings.TrimSpace(unit.Title) == "" {
				return fmt.Errorf("course %q unit %d: title required", title, ui+1)
			}
			for li, lesson := range unit.Lessons {
				if strings.TrimSpace(lesson.Title) == "" {
					return fmt.Errorf("course %q unit %q lesson %d: title required", title, unit.Title, li+1)
				}
				for qi, ch := range lesson.Challenges {
					where := fmt.Sprintf("course %q lesson %q challenge %d", title, lesson.Title, qi+1)
					if !types.ChallengeType(normalizeType(ch.Type)).Valid() {
						return fmt.Errorf("%s: unknown type %q", where, ch.Type)
					}
					if strings.TrimSpace(ch.Question) == "" {
						return fmt.Errorf("%s: question required", where)
					}
					correct := 0
					for _, o := range ch.Options {
						if o.Correct {
							correct++
						}
					}
					if correct != 1 {
						return fmt.Errorf("%s: want exactly one correct option, got %d", where, correct)
					}
				}
			}
		}
	}
	return nil
}

func normalizeType(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Counts is a per-level tally, used for both parsed and imported trees.
type Counts struct {
	Courses    int
	Units      int
	Lessons    int
	Challenges int
	Options    int
}

func (c *Curriculum) Counts() Counts {
	var n Counts
	for _, course := range c.Courses {
		n.Courses++
		for _, unit := range course.Units {
			n.Units++
			for _, lesson := range unit.Lessons {
				n.Lessons++
				for _, ch := range lesson.Challenges {
					n.Challenges++
					n.Options += len(ch.Options)
				}
			}
		}
	}
	return n
}
