package catalogControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/starsoft-labs/nft-market-api/catalog"
)

// ExportCatalogToExcel dumps the currently visible listing as a spreadsheet
// for back-office use.
//
// GET /catalog/export
func ExportCatalogToExcel(session *catalog.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := session.Current().Snapshot()

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Catalog")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{"ID", "Name", "Description", "Price (ETH)", "Image"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, item := range snap.Items {
			row := sheet.AddRow()
			row.AddCell().SetValue(item.ID)
			row.AddCell().SetValue(item.Name)
			row.AddCell().SetValue(item.Description)
			row.AddCell().SetValue(item.Price)
			row.AddCell().SetValue(item.Image)
		}

		c.Header("Content-Disposition", `attachment; filename="catalog.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
