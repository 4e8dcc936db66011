package subgraph

import (
	"fmt"

	"marketTags/internal/model"
)

// PageSize is the number of markets requested per query.
const PageSize = 1000

var marketsQuery = fmt.Sprintf(`query Markets($lastTimestamp: BigInt!) {
  markets(
    first: %d
    orderBy: createdTimestamp
    orderDirection: asc
    where: { createdTimestamp_gt: $lastTimestamp }
  ) {
    outputToken {
      id
      name
      symbol
    }
    createdTimestamp
  }
}`, PageSize)

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type marketsResponse struct {
	Data *struct {
		Markets *[]model.Market `json:"markets"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
