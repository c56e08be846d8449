package report

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/report-cli/internal/model"
	"github.com/sells-group/report-cli/pkg/notion"
)

// Notion caps a rich_text content block at 2000 characters.
const notionBlockLimit = 2000

// DeliverToNotion creates a report page in the configured database: title
// plus run metadata properties, with the narrative markdown appended as
// paragraph blocks.
func DeliverToNotion(ctx context.Context, c notion.Client, dbID string, m *model.MetricsBundle, reportMD string) error {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: notionapi.Properties{
			"Name": notionapi.TitleProperty{
				Type: notionapi.PropertyTypeTitle,
				Title: []notionapi.RichText{
					{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: "Weekly Performance Report " + m.Meta.RunDate}},
				},
			},
			"Weeks": notionapi.NumberProperty{
				Type:   notionapi.PropertyTypeNumber,
				Number: float64(m.Meta.WeekRange.Weeks),
			},
			"Anomalies": notionapi.NumberProperty{
				Type:   notionapi.PropertyTypeNumber,
				Number: float64(len(m.Anomalies)),
			},
		},
		Children: markdownBlocks(reportMD),
	}

	if _, err := c.CreatePage(ctx, req); err != nil {
		return eris.Wrap(err, "report: deliver to notion")
	}
	zap.L().Info("delivered report to notion", zap.String("database", dbID))
	return nil
}

// markdownBlocks converts the narrative into paragraph blocks, splitting on
// blank lines and clamping each block to Notion's rich_text size limit.
func markdownBlocks(md string) []notionapi.Block {
	var blocks []notionapi.Block
	for _, para := range strings.Split(strings.TrimSpace(md), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) > notionBlockLimit {
			para = para[:notionBlockLimit]
		}
		blocks = append(blocks, &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: []notionapi.RichText{
					{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: para}},
				},
			},
		})
	}
	return blocks
}
