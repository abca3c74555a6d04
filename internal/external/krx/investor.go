package krx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/pkg/format"
)

// flowWindow is how far back investor statistics are requested
const flowWindow = 31 * 24 * time.Hour

// investorResponse mirrors the MDCSTAT02302 dataset.
// 모든 금액은 천단위 콤마가 들어간 문자열이다.
type investorResponse struct {
	Output []struct {
		Date         string `json:"TRD_DD"`  // YYYY/MM/DD
		Institutions string `json:"TRDVAL1"` // 기관 순매수
		Individual   string `json:"TRDVAL3"` // 개인 순매수
		Foreign      string `json:"TRDVAL4"` // 외국인 순매수
	} `json:"output"`
}

// FetchInvestorFlows fetches daily net trading value by investor type
// for the last month. isuCd는 FetchISUCode가 돌려준 KR7 코드다.
func (c *Client) FetchInvestorFlows(ctx context.Context, isuCode string) ([]contracts.InvestorFlow, error) {
	now := time.Now()
	params := url.Values{
		"bld":       {"dbms/MDC/STAT/standard/MDCSTAT02302"},
		"isuCd":     {isuCode},
		"strtDd":    {now.Add(-flowWindow).Format("20060102")},
		"endDd":     {now.Format("20060102")},
		"askBid":    {"3"}, // 순매수
		"trdVolVal": {"2"}, // 거래대금
	}

	body, err := c.fetchJSON(ctx, params)
	if err != nil {
		return nil, err
	}

	return parseInvestorFlows(body)
}

func parseInvestorFlows(body []byte) ([]contracts.InvestorFlow, error) {
	var raw investorResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	flows := make([]contracts.InvestorFlow, 0, len(raw.Output))
	for _, row := range raw.Output {
		amounts, err := parseFlowAmounts(row.Individual, row.Foreign, row.Institutions)
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", row.Date, err)
		}

		flows = append(flows, contracts.InvestorFlow{
			Date:  strings.ReplaceAll(row.Date, "/", "-"),
			InVal: amounts,
			InKR: contracts.FlowStrings{
				Individual:   format.KoreanAmount(amounts.Individual),
				Foreign:      format.KoreanAmount(amounts.Foreign),
				Institutions: format.KoreanAmount(amounts.Institutions),
			},
		})
	}

	return flows, nil
}

func parseFlowAmounts(individual, foreign, institutions string) (contracts.FlowAmounts, error) {
	var out contracts.FlowAmounts
	var err error

	if out.Individual, err = parseCommaInt(individual); err != nil {
		return out, err
	}
	if out.Foreign, err = parseCommaInt(foreign); err != nil {
		return out, err
	}
	if out.Institutions, err = parseCommaInt(institutions); err != nil {
		return out, err
	}
	return out, nil
}

// parseCommaInt parses a comma-grouped amount string ("-1,234,000")
func parseCommaInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	return v, nil
}
