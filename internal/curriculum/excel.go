package curriculum

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is read when the caller does not name one.
const DefaultSheet = "Curriculum"

// ExcelColumns is the header row of a curriculum spreadsheet. Each data row is
// one challenge option; consecutive rows sharing course, unit, lesson and
// question build up the tree in sheet order.
var ExcelColumns = []string{
	"Course", "CourseImage", "Unit", "UnitDescription", "Lesson",
	"Type", "Question", "Option", "Correct", "OptionImage", "OptionAudio",
}

const (
	colCourse = iota
	colCourseImage
	colUnit
	colUnitDescription
	colLesson
	colType
	colQuestion
	colOption
	colCorrect
	colOptionImage
	colOptionAudio
)

func ParseExcel(r io.Reader, sheet string) (*Curriculum, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	if strings.TrimSpace(sheet) == "" {
		sheet = DefaultSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	b := newTreeBuilder()
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if isBlank(row) {
			continue
		}
		if err := b.add(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	c := b.curriculum()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

type treeBuilder struct {
	courses []*CourseDef
	byTitle map[string]*CourseDef
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{byTitle: map[string]*CourseDef{}}
}

func (b *treeBuilder) add(row []string) error {
	title := cell(row, colCourse)
	if title == "" {
		return fmt.Errorf("course required")
	}
	course, ok := b.byTitle[strings.ToLower(title)]
	if !ok {
		course = &CourseDef{Title: title, ImageSrc: cell(row, colCourseImage)}
		b.byTitle[strings.ToLower(title)] = course
		b.courses = append(b.courses, course)
	}

	unitTitle := cell(row, colUnit)
	if unitTitle == "" {
		// Course-only row.
		return nil
	}
	unit := lastUnit(course, unitTitle)
	if unit == nil {
		course.Units = append(course.Units, UnitDef{Title: unitTitle, Description: cell(row, colUnitDescription)})
		unit = &course.Units[len(course.Units)-1]
	}

	lessonTitle := cell(row, colLesson)
	if lessonTitle == "" {
		return nil
	}
	lesson := lastLesson(unit, lessonTitle)
	if lesson == nil {
		unit.Lessons = append(unit.Lessons, LessonDef{Title: lessonTitle})
		lesson = &unit.Lessons[len(unit.Lessons)-1]
	}

	question := cell(row, colQuestion)
	if question == "" {
		return nil
	}
	ch := lastChallenge(lesson, question)
	if ch == nil {
		lesson.Challenges = append(lesson.Challenges, ChallengeDef{Type: normalizeType(cell(row, colType)), Question: question})
		ch = &lesson.Challenges[len(lesson.Challenges)-1]
	}

	text := cell(row, colOption)
	if text == "" {
		return fmt.Errorf("option text required")
	}
	correct, err := parseBool(cell(row, colCorrect))
	if err != nil {
		return err
	}
	ch.Options = append(ch.Options, OptionDef{
		Text:     text,
		Correct:  correct,
		ImageSrc: cell(row, colOptionImage),
		AudioSrc: cell(row, colOptionAudio),
	})
	return nil
}

func (b *treeBuilder) curriculum() *Curriculum {
	c := &Curriculum{Courses: make([]CourseDef, 0, len(b.courses))}
	for _, course := range b.courses {
		c.Courses = append(c.Courses, *course)
	}
	return c
}

func lastUnit(c *CourseDef, title string) *UnitDef {
	if n := len(c.Units); n > 0 && c.Units[n-1].Title == title {
		return &c.Units[n-1]
	}
	return nil
}

func lastLesson(u *UnitDef, title string) *LessonDef {
	if n := len(u.Lessons); n > 0 && u.Lessons[n-1].Title == title {
		return &u.Lessons[n-1]
	}
	return nil
}

func lastChallenge(l *LessonDef, question string) *ChallengeDef {
	if n := len(l.Challenges); n > 0 && l.Challenges[n-1].Question == question {
		return &l.Challenges[n-1]
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "0", "no", "n", "false":
		return false, nil
	case "1", "yes", "y", "true", "x":
		return true, nil
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v, nil
	}
	return false, fmt.Errorf("bad Correct value %q", raw)
}

// WriteExcel renders c in the layout ParseExcel reads, one option per row.
func WriteExcel(w io.Writer, c *Curriculum) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), DefaultSheet); err != nil {
		return err
	}
	header := make([]interface{}, len(ExcelColumns))
	for i, h := range ExcelColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(DefaultSheet, "A1", &header); err != nil {
		return err
	}

	rowNum := 2
	writeRow := func(values ...interface{}) error {
		axis, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		rowNum++
		return f.SetSheetRow(DefaultSheet, axis, &values)
	}

	for _, course := range c.Courses {
		if len(course.Units) == 0 {
			if err := writeRow(course.Title, course.ImageSrc); err != nil {
				return err
			}
			continue
		}
		for _, unit := range course.Units {
			for _, lesson := range unit.Lessons {
				for _, ch := range lesson.Challenges {
					for _, o := range ch.Options {
						correct := ""
						if o.Correct {
							correct = "yes"
						}
						if err := writeRow(
							course.Title, course.ImageSrc, unit.Title, unit.Description, lesson.Title,
							normalizeType(ch.Type), ch.Question, o.Text, correct, o.ImageSrc, o.AudioSrc,
						); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}
