package memspec

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/drampower/command"
)

var _ = Describe("Spec", func() {
	var s *Spec

	BeforeEach(func() {
		s = MakeBuilder().Build("ddr3")
	})

	It("should use DDR3-1600 defaults", func() {
		Expect(s.Protocol).To(Equal(DDR3))
		Expect(s.RAS()).To(Equal(int64(28)))
		Expect(s.RP()).To(Equal(int64(11)))
		Expect(s.RCD()).To(Equal(int64(11)))
		Expect(s.RFC()).To(Equal(int64(208)))
		Expect(s.NumBanks()).To(Equal(8))
		Expect(s.Freq().PeriodNS()).To(BeNumerically("~", 1.25, 1e-9))
	})

	It("should compute completion latencies", func() {
		Expect(s.CompletionLatency(command.RD)).To(Equal(int64(11 + 0 + 1 + 4)))
		Expect(s.CompletionLatency(command.WR)).To(Equal(int64(8 + 4 + 12)))
		Expect(s.CompletionLatency(command.ACT)).To(Equal(int64(11)))
		Expect(s.CompletionLatency(command.PREA)).To(Equal(int64(11)))
		Expect(s.CompletionLatency(command.REF)).To(Equal(int64(208)))
		Expect(s.CompletionLatency(command.REFB)).To(Equal(int64(208)))
		Expect(s.CompletionLatency(command.NOP)).To(Equal(int64(1)))
	})

	It("should compute precharge offsets", func() {
		Expect(s.PrechargeOffset(command.RDA)).To(Equal(int64(6)))
		Expect(s.PrechargeOffset(command.WRA)).To(Equal(int64(4 + 8 + 12)))
		Expect(s.PrechargeOffset(command.ACT)).To(Equal(int64(0)))
	})

	It("should compute the self-refresh exit time", func() {
		Expect(s.ExitSelfRefresh()).To(Equal(int64(512 - 11)))

		lp := MakeBuilder().WithPreset(LPDDR4).Build("lp")
		Expect(lp.ExitSelfRefresh()).To(Equal(int64(460)))

		w := MakeBuilder().WithPreset(WideIO).Build("wio")
		Expect(w.ExitSelfRefresh()).To(Equal(int64(20)))
	})

	It("should fall back to XP when XPDLL is missing", func() {
		w := MakeBuilder().WithPreset(WideIO).Build("wio")
		Expect(w.XPDLL()).To(Equal(w.XP()))
	})

	It("should report every invalid parameter", func() {
		bad := Preset(DDR3)
		bad.Timing.RP = 0
		bad.Timing.RFC = -1
		bad.Banks = 6
		bad.BankGroups = 4

		err := bad.Validate()

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("RP must be positive"))
		Expect(err.Error()).To(ContainSubstring("RFC must be positive"))
		Expect(err.Error()).To(ContainSubstring("bank groups"))
	})

	It("should panic when building an invalid spec", func() {
		Expect(func() {
			MakeBuilder().WithTRAS(0).Build("bad")
		}).To(Panic())
	})

	It("should validate all presets", func() {
		for _, p := range Presets() {
			Expect(p.Validate()).To(Succeed(), p.Name)
		}
	})
})

var _ = Describe("Loading", func() {
	It("should fill absent fields from the preset", func() {
		doc := `{"protocol": "ddr4", "timing": {"RFC": 350}, "ranks": 2}`

		s, err := Decode(strings.NewReader(doc))

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Protocol).To(Equal(DDR4))
		Expect(s.RFC()).To(Equal(int64(350)))
		Expect(s.RAS()).To(Equal(int64(39)))
		Expect(s.NumRanks()).To(Equal(2))
		Expect(s.Domains).To(HaveLen(2))
	})

	It("should reject an unknown protocol", func() {
		_, err := Decode(strings.NewReader(`{"protocol": "SDR"}`))
		Expect(err).To(HaveOccurred())
	})

	It("should reject an invalid document", func() {
		_, err := Decode(strings.NewReader(`{"timing": {"RP": 0}}`))
		Expect(err).To(MatchError(ContainSubstring("RP must be positive")))
	})

	It("should round trip through a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "spec.json")
		orig := MakeBuilder().WithPreset(LPDDR4).WithNumRank(2).Build("lp2")

		buf := bytes.NewBuffer(nil)
		Expect(Encode(buf, orig)).To(Succeed())
		Expect(os.WriteFile(path, buf.Bytes(), 0o644)).To(Succeed())

		loaded, err := Load(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(*loaded).To(Equal(*orig))
	})
})
