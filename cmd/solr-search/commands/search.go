package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kitbuilder587/solr-search/internal/domain"
)

func SearchAction(ctx context.Context, cmd *cli.Command) error {
	req, err := requestTemplate(cmd)
	if err != nil {
		return err
	}
	query := cmd.String("query")
	req.Query = domain.RawQuery(query)

	appCtx, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	rs, err := appCtx.Service.Search(ctx, req)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return WriteJSON(os.Stdout, query, rs)
	}
	return WriteText(os.Stdout, rs)
}
