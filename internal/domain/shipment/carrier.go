package shipment

import (
	"strings"

	"order-fulfillment/internal/pkg/errs"
)

var ErrInvalidCarrier = errs.Validation("unsupported carrier")

type Carrier string

const (
	CarrierBlackCat         Carrier = "BLACK_CAT"
	CarrierHsinchuLogistics Carrier = "HSINCHU_LOGISTICS"
	CarrierSevenEleven      Carrier = "SEVEN_ELEVEN"
	CarrierFamilyMart       Carrier = "FAMILY_MART"
	CarrierHiLife           Carrier = "HI_LIFE"
	CarrierPostOffice       Carrier = "POST_OFFICE"
	CarrierSFExpress        Carrier = "SF_EXPRESS"
)

type carrierInfo struct {
	displayName string
	prefix      string
	trackingURL string
}

const trackingPlaceholder = "{trackingNumber}"

var carriers = map[Carrier]carrierInfo{
	CarrierBlackCat:         {"Black Cat", "BC", "https://www.t-cat.com.tw/inquire/trace.aspx?no={trackingNumber}"},
	CarrierHsinchuLogistics: {"Hsinchu Logistics", "HC", "https://www.hct.com.tw/search/searchgoods_n.aspx?no={trackingNumber}"},
	CarrierSevenEleven:      {"7-ELEVEN", "SE", "https://eservice.7-11.com.tw/e-tracking/search.aspx?no={trackingNumber}"},
	CarrierFamilyMart:       {"FamilyMart", "FM", "https://www.famiport.com.tw/Web_Famiport/page/process.aspx?no={trackingNumber}"},
	CarrierHiLife:           {"Hi-Life", "HL", "https://www.hilife.com.tw/serviceInfo_search.aspx?no={trackingNumber}"},
	CarrierPostOffice:       {"Chunghwa Post", "PO", "https://postserv.post.gov.tw/pstmail/main_mail.html?no={trackingNumber}"},
	CarrierSFExpress:        {"SF Express", "SF", "https://www.sf-express.com/tw/tc/dynamic_function/waybill/#search/bill-number/{trackingNumber}"},
}

func ParseCarrier(s string) (Carrier, error) {
	c := Carrier(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", errs.Wrapf(ErrInvalidCarrier, "carrier %q", s)
	}
	return c, nil
}

func (c Carrier) IsValid() bool {
	_, ok := carriers[c]
	return ok
}

func (c Carrier) String() string      { return string(c) }
func (c Carrier) DisplayName() string { return carriers[c].displayName }
func (c Carrier) Prefix() string      { return carriers[c].prefix }

func (c Carrier) TrackingURL(trackingNumber string) string {
	pattern := carriers[c].trackingURL
	if pattern == "" {
		return ""
	}
	return strings.ReplaceAll(pattern, trackingPlaceholder, trackingNumber)
}
