package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MessageGenerator generates sample SWIFT MT message files
type MessageGenerator struct {
	Count          int
	Types          []string
	MalformedRatio float64
	MaxCharges     int
	Seed           int64

	rng *rand.Rand
}

// messageTemplate holds the randomized values for one generated message
type messageTemplate struct {
	MessageType string
	SenderBIC   string
	ReceiverBIC string
	Session     string
	Sequence    string
	InputTime   string
	InputDate   string
	ValueDate   string
	Reference   string
	Currency    string
	Amount      decimal.Decimal
	Instructed  *instructedAmount
	Ordering    party
	Beneficiary party
	ChargeCode  string
	Charges     []decimal.Decimal
	UserHeader  bool
	RemittInfo  string
}

type instructedAmount struct {
	Currency string
	Amount   decimal.Decimal
}

type party struct {
	Account string
	Name    string
}

var (
	senderBICs   = []string{"BANKBEBB", "DEUTDEFF", "MIDLGB22", "BNPAFRPP", "UBSWCHZH"}
	receiverBICs = []string{"CHASUS33", "CITIUS33", "BOFAUS3N", "IRVTUS3N", "WFBIUS6S"}
	currencies   = []string{"USD", "EUR", "GBP", "CHF", "JPY"}
	chargeCodes  = []string{"SHA", "OUR", "BEN"}

	orderingParties = []party{
		{"000002426114498", "JOHN DOE"},
		{"BE71096123456769", "ACME TRADING NV"},
		{"FR7630006000011234567890189", "SOCIETE GENERALE CLIENT"},
		{"GB29NWBK60161331926819", "NORTHWIND IMPORTS LTD"},
	}
	beneficiaryParties = []party{
		{"DE89370400440532013000", "JANE SMITH"},
		{"CH9300762011623852957", "ALPINE COMPONENTS AG"},
		{"NL91ABNA0417164300", "VAN DER BERG LOGISTICS"},
		{"IT60X0542811101000000123456", "FERRARI PARTS SRL"},
	}
	remittanceLines = []string{
		"INVOICE 4321",
		"PAYMENT FOR SERVICES Q3",
		"CONTRACT 2025/118 SETTLEMENT",
		"SALARY JULY 2025",
	}
)

func main() {
	var (
		outputDir      = flag.String("output-dir", "../generated", "Output directory for generated message files")
		count          = flag.Int("count", 20, "Number of message files to generate")
		types          = flag.String("types", "103,202,910", "Comma-separated MT message types to generate")
		malformedRatio = flag.Float64("malformed-ratio", 0.0, "Fraction of files generated with deliberate damage (0.0-1.0)")
		maxCharges     = flag.Int("max-charges", 3, "Maximum number of sender charge (71F) repetitions per message")
		seed           = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible generation")
	)
	flag.Parse()

	if *malformedRatio < 0.0 || *malformedRatio > 1.0 {
		log.Fatalf("malformed-ratio must be between 0.0 and 1.0, got %f", *malformedRatio)
	}

	generator := &MessageGenerator{
		Count:          *count,
		Types:          strings.Split(*types, ","),
		MalformedRatio: *malformedRatio,
		MaxCharges:     *maxCharges,
		Seed:           *seed,
		rng:            rand.New(rand.NewSource(*seed)),
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	files, malformed, err := generator.GenerateFiles(*outputDir)
	if err != nil {
		log.Fatalf("Failed to generate message files: %v", err)
	}

	if err := generator.WriteManifest(*outputDir, files); err != nil {
		log.Fatalf("Failed to write manifest: %v", err)
	}

	fmt.Printf("Generated %d message files in %s\n", len(files), *outputDir)
	fmt.Printf("Message types: %s\n", strings.Join(generator.Types, ", "))
	fmt.Printf("Malformed files: %d\n", malformed)
	fmt.Printf("Seed used: %d\n", *seed)
}

// GenerateFiles renders Count message files into outputDir and returns their names
func (mg *MessageGenerator) GenerateFiles(outputDir string) ([]string, int, error) {
	files := make([]string, 0, mg.Count)
	malformed := 0

	for i := 0; i < mg.Count; i++ {
		template := mg.randomTemplate(i)

		var content, name string
		if mg.rng.Float64() < mg.MalformedRatio {
			content = mg.renderMalformed(template)
			name = fmt.Sprintf("bad_mt%s_%04d.txt", template.MessageType, i+1)
			malformed++
		} else {
			content = mg.renderMessage(template)
			name = fmt.Sprintf("mt%s_%04d.txt", template.MessageType, i+1)
		}

		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, malformed, fmt.Errorf("writing %s: %w", path, err)
		}

		files = append(files, name)
	}

	return files, malformed, nil
}

// randomTemplate fills a message template with plausible randomized values
func (mg *MessageGenerator) randomTemplate(index int) messageTemplate {
	valueDay := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, mg.rng.Intn(364))

	template := messageTemplate{
		MessageType: mg.Types[mg.rng.Intn(len(mg.Types))],
		SenderBIC:   senderBICs[mg.rng.Intn(len(senderBICs))],
		ReceiverBIC: receiverBICs[mg.rng.Intn(len(receiverBICs))],
		Session:     fmt.Sprintf("%04d", mg.rng.Intn(10000)),
		Sequence:    fmt.Sprintf("%06d", index+1),
		InputTime:   fmt.Sprintf("%02d%02d%02d", mg.rng.Intn(24), mg.rng.Intn(60), mg.rng.Intn(60)),
		InputDate:   valueDay.Format("060102"),
		ValueDate:   valueDay.Format("060102"),
		Reference:   fmt.Sprintf("REF%s%04d", valueDay.Format("20060102"), index+1),
		Currency:    currencies[mg.rng.Intn(len(currencies))],
		Amount:      mg.randomAmount(1, 250000),
		Ordering:    orderingParties[mg.rng.Intn(len(orderingParties))],
		Beneficiary: beneficiaryParties[mg.rng.Intn(len(beneficiaryParties))],
		ChargeCode:  chargeCodes[mg.rng.Intn(len(chargeCodes))],
		UserHeader:  mg.rng.Float64() < 0.5,
	}

	// Instructed amount in a second currency on roughly a third of messages
	if mg.rng.Float64() < 0.35 {
		template.Instructed = &instructedAmount{
			Currency: currencies[mg.rng.Intn(len(currencies))],
			Amount:   mg.randomAmount(1, 250000),
		}
	}

	if mg.MaxCharges > 0 {
		chargeCount := mg.rng.Intn(mg.MaxCharges + 1)
		for c := 0; c < chargeCount; c++ {
			template.Charges = append(template.Charges, mg.randomAmount(1, 100))
		}
	}

	if mg.rng.Float64() < 0.6 {
		template.RemittInfo = remittanceLines[mg.rng.Intn(len(remittanceLines))]
	}

	return template
}

func (mg *MessageGenerator) randomAmount(min, max float64) decimal.Decimal {
	value := min + mg.rng.Float64()*(max-min)
	return decimal.NewFromFloat(value).Round(2)
}

// renderMessage assembles the five framing blocks of a complete message
func (mg *MessageGenerator) renderMessage(t messageTemplate) string {
	var b strings.Builder

	b.WriteString(mg.renderBasicHeader(t))
	b.WriteString(mg.renderApplicationHeader(t))
	if t.UserHeader {
		b.WriteString(mg.renderUserHeader(t))
	}
	// The end-of-text dash is not stripped by the decoder, so well-formed
	// samples close block 4 without it; the malformed branch keeps it.
	b.WriteString("{4:\n")
	b.WriteString(mg.renderTextBody(t))
	b.WriteString("}")
	b.WriteString(mg.renderTrailer())

	return b.String()
}

func (mg *MessageGenerator) renderBasicHeader(t messageTemplate) string {
	return "{1:F01" + "000000000" + t.SenderBIC + "AXXX" + "00" + t.Session + "00" + t.Sequence + "}"
}

func (mg *MessageGenerator) renderApplicationHeader(t messageTemplate) string {
	mir := t.ReceiverBIC + "AXXX" + fmt.Sprintf("%03d", mg.rng.Intn(1000))
	return "{2:O" + t.MessageType + t.InputTime + t.InputDate + "N" + mir + "}"
}

func (mg *MessageGenerator) renderUserHeader(t messageTemplate) string {
	uetr := fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		mg.rng.Uint32(), mg.rng.Intn(0x10000), mg.rng.Intn(0x10000),
		mg.rng.Intn(0x10000), mg.rng.Int63n(1<<48))
	return "{3::108:" + t.Reference + ":121:" + uetr + "}"
}

func (mg *MessageGenerator) renderTextBody(t messageTemplate) string {
	var b strings.Builder

	b.WriteString(":20:" + t.Reference + "\n")

	switch t.MessageType {
	case "202", "910":
		// Institution transfers carry a related reference instead of customer details
		b.WriteString(":21:" + t.Reference + "R\n")
		b.WriteString(":32A:" + t.ValueDate + t.Currency + mg.swiftAmount(t.Amount) + "\n")
		b.WriteString(":52A:" + t.SenderBIC + "\n")
		b.WriteString(":58A:" + t.ReceiverBIC + "\n")
	default:
		b.WriteString(":23B:CRED\n")
		b.WriteString(":32A:" + t.ValueDate + t.Currency + mg.swiftAmount(t.Amount) + "\n")
		if t.Instructed != nil {
			b.WriteString(":33B:" + t.ValueDate + t.Instructed.Currency + mg.swiftAmount(t.Instructed.Amount) + "\n")
		}
		b.WriteString(":50K:/" + t.Ordering.Account + "\n" + t.Ordering.Name + "\n")
		b.WriteString(":52A:" + t.SenderBIC + "\n")
		b.WriteString(":59:/" + t.Beneficiary.Account + "\n" + t.Beneficiary.Name + "\n")
		if t.RemittInfo != "" {
			b.WriteString(":70:" + t.RemittInfo + "\n")
		}
		b.WriteString(":71A:" + t.ChargeCode + "\n")
		for _, charge := range t.Charges {
			// 71F values carry the bare amount; the decoder accumulates
			// every parseable occurrence.
			b.WriteString(":71F:" + mg.swiftAmount(charge) + "\n")
		}
	}

	return b.String()
}

func (mg *MessageGenerator) renderTrailer() string {
	return fmt.Sprintf("{5::MAC:%08X:CHK:%012X}", mg.rng.Uint32(), mg.rng.Int63n(1<<48))
}

// renderMalformed produces a message with one kind of deliberate damage.
// Damaged files still decode best effort, so they exercise the decoder's
// tolerance rather than its error paths.
func (mg *MessageGenerator) renderMalformed(t messageTemplate) string {
	switch mg.rng.Intn(3) {
	case 0:
		// Basic header cut short of every positional field
		return "{1:F01BANK}" + mg.renderApplicationHeader(t) + "{4:\n:20:" + t.Reference + "\n-}" + mg.renderTrailer()
	case 1:
		// Unparseable settlement amount
		return mg.renderBasicHeader(t) + mg.renderApplicationHeader(t) +
			"{4:\n:20:" + t.Reference + "\n:32A:" + t.ValueDate + t.Currency + "NOTANUMBER\n-}" +
			mg.renderTrailer()
	default:
		// Text block missing entirely
		return mg.renderBasicHeader(t) + mg.renderApplicationHeader(t) + mg.renderTrailer()
	}
}

// swiftAmount renders a decimal with the comma decimal separator used on the wire
func (mg *MessageGenerator) swiftAmount(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}

// WriteManifest documents the generated set for anyone browsing the directory
func (mg *MessageGenerator) WriteManifest(outputDir string, files []string) error {
	var b strings.Builder

	b.WriteString("# Generated Test Messages\n\n")
	b.WriteString("Sample SWIFT MT message files for decoder testing.\n\n")
	b.WriteString("Files prefixed with `bad_` carry deliberate damage (truncated headers,\n")
	b.WriteString("unparseable amounts, or a missing text block) and should still decode\n")
	b.WriteString("without errors, just with fewer populated fields.\n\n")
	b.WriteString("## Files\n\n")
	for _, name := range files {
		b.WriteString("- " + name + "\n")
	}
	b.WriteString("\n## Regeneration\n\n")
	b.WriteString("```bash\n")
	b.WriteString(fmt.Sprintf("go run message_generator.go -count=%d -types=%s -malformed-ratio=%.2f -seed=%d\n",
		mg.Count, strings.Join(mg.Types, ","), mg.MalformedRatio, mg.Seed))
	b.WriteString("```\n\n")
	b.WriteString("Generated on: " + time.Now().Format("2006-01-02 15:04:05") + "\n")

	manifestPath := filepath.Join(outputDir, "README.md")
	return os.WriteFile(manifestPath, []byte(b.String()), 0644)
}
