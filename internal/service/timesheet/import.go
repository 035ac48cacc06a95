package timesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
)

// Roster sheets start with four fixed columns followed by one column per day.
const rosterFixedColumns = 4

// RowsFromGrid reads roster rows from spreadsheet cells laid out as
// "No | Name Job | Period | Hrs | <day>...", header first. The day count is
// taken from the header. Blank lines are skipped; a row whose No cell is not a
// number is numbered by its position.
func RowsFromGrid(grid [][]string) ([]timesheet.RosterRow, int, error) {
	if len(grid) == 0 {
		return nil, 0, fmt.Errorf("%w: sheet is empty", timesheet.ErrInvalidWorkbook)
	}
	numDays := len(grid[0]) - rosterFixedColumns
	if numDays < 1 {
		return nil, 0, fmt.Errorf("%w: header needs at least %d columns", timesheet.ErrInvalidWorkbook, rosterFixedColumns+1)
	}
	if numDays > timesheet.MaxReportDays {
		return nil, 0, fmt.Errorf("%w: %d day columns exceeds %d", timesheet.ErrInvalidWorkbook, numDays, timesheet.MaxReportDays)
	}

	var rows []timesheet.RosterRow
	for i, line := range grid[1:] {
		if isBlankLine(line) {
			continue
		}
		cells := make([]string, rosterFixedColumns+numDays)
		copy(cells, line)

		num, err := strconv.Atoi(strings.TrimSpace(cells[0]))
		if err != nil {
			num = i + 1
		}
		rows = append(rows, timesheet.RosterRow{
			RowNumber: num,
			Note:      strings.TrimSpace(cells[1]),
			Period:    strings.TrimSpace(cells[2]),
			Hrs:       strings.TrimSpace(cells[3]),
			Days:      cells[rosterFixedColumns:],
		})
	}

	return rows, numDays, nil
}

func isBlankLine(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
