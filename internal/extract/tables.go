package extract

import "discountocr/pkg/models"

// minTableCells is the number of mandatory columns of a discount table row.
const minTableCells = 6

// ExtractTableRows normalizes the grids of one page. Rows with fewer than
// six cells (headers split across lines, totals, notes) are dropped.
//
// Grids come from the text layer and hold only cells that carry text, so
// the six mandatory columns are never null. A blank cell inside a row is
// not kept as a gap; the cells to its right move one column left.
func ExtractTableRows(grids [][][]string) []models.TableRow {
	var rows []models.TableRow
	for _, grid := range grids {
		for _, cells := range grid {
			if row, ok := toTableRow(cells); ok {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func toTableRow(cells []string) (models.TableRow, bool) {
	if len(cells) < minTableCells {
		return models.TableRow{}, false
	}
	return models.TableRow{
		Product:        cells[0],
		UOM:            cells[1],
		PriceList:      cells[2],
		DiscReg:        cells[3],
		DiscIOM:        cells[4],
		RBPDist:        cells[5],
		AdditionalDisc: optionalCell(cells, 6),
		CutPriceOTB:    optionalCell(cells, 7),
	}, true
}

func optionalCell(cells []string, i int) *string {
	if i >= len(cells) {
		return nil
	}
	v := cells[i]
	return &v
}
