package summary_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"cleaning-intake/internal/summary"
)

const fullReply = `Ihre Reinigungsanfrage wurde aufgenommen. Wir melden uns so schnell wie möglich mit einem Angebot bei Ihnen.

INTERNE_ZUSAMMENFASSUNG:
Neue Gebäudereinigungs-Anfrage:
- Reinigungsart: Büroreinigung
- Objekt/Fläche: Büro, 200m²
- Besonderheiten: Teppichboden
- Terminwunsch: Montag 10:00
- Name: Erika Mustermann
- Telefon: 0171 1234567
- E-Mail: erika@example.com
`

var _ = Describe("Parse", func() {
	Context("when the reply has no marker", func() {
		It("reports no summary and keeps the whole reply as preamble", func() {
			r := summary.Parse("  Welche Fläche hat das Objekt?  ")

			Expect(r.HasSummary).To(BeFalse())
			Expect(r.Summary).To(BeEmpty())
			Expect(r.Fields).To(BeEmpty())
			Expect(r.Preamble).To(Equal("Welche Fläche hat das Objekt?"))
		})

		It("returns the raw reply as customer text", func() {
			raw := "Danke!\n"
			Expect(summary.Parse(raw).CustomerText()).To(Equal(raw))
		})
	})

	Context("when the reply carries a complete summary", func() {
		var r summary.Reply

		BeforeEach(func() {
			r = summary.Parse(fullReply)
		})

		It("splits preamble and summary at the marker", func() {
			Expect(r.HasSummary).To(BeTrue())
			Expect(r.Preamble).To(HavePrefix("Ihre Reinigungsanfrage wurde aufgenommen."))
			Expect(r.Preamble).NotTo(ContainSubstring("INTERNE_ZUSAMMENFASSUNG"))
			Expect(r.Summary).To(HavePrefix("Neue Gebäudereinigungs-Anfrage:"))
			Expect(r.Summary).To(HaveSuffix("E-Mail: erika@example.com"))
		})

		It("parses the bulleted key/value lines", func() {
			Expect(r.Fields).To(HaveLen(7))
			Expect(r.Headings).To(Equal([]string{"Neue Gebäudereinigungs-Anfrage:"}))

			v, ok := r.Field("terminwunsch")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("Montag 10:00"))

			v, ok = r.Field("E-Mail")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("erika@example.com"))
		})

		It("is complete", func() {
			Expect(r.Missing()).To(BeEmpty())
			Expect(r.Complete()).To(BeTrue())
		})

		It("strips the internal block from the customer text", func() {
			Expect(r.CustomerText()).To(Equal(r.Preamble))
		})
	})

	Context("when the marker appears more than once", func() {
		It("splits at the first occurrence only", func() {
			r := summary.Parse("a INTERNE_ZUSAMMENFASSUNG: b INTERNE_ZUSAMMENFASSUNG: c")

			Expect(r.Preamble).To(Equal("a"))
			Expect(r.Summary).To(Equal("b INTERNE_ZUSAMMENFASSUNG: c"))
		})
	})

	Context("when the marker is the last thing in the reply", func() {
		It("yields an empty summary but still reports the marker", func() {
			r := summary.Parse("Danke. INTERNE_ZUSAMMENFASSUNG:   \n ")

			Expect(r.HasSummary).To(BeTrue())
			Expect(r.Summary).To(BeEmpty())
			Expect(r.Complete()).To(BeFalse())
		})
	})

	Context("when fields still hold placeholders", func() {
		It("lists them as missing", func() {
			r := summary.Parse("INTERNE_ZUSAMMENFASSUNG:\n- Reinigungsart: Grundreinigung\n- Name: ...\n")

			Expect(r.Missing()).To(ContainElements("Name", "Telefon", "E-Mail"))
			Expect(r.Missing()).NotTo(ContainElement("Reinigungsart"))
		})
	})
})
