package memspec

// Preset returns a representative device of the given protocol. Timings and
// currents follow common vendor datasheets.
func Preset(p Protocol) Spec {
	switch p {
	case DDR4:
		return ddr4Preset()
	case LPDDR4:
		return lpddr4Preset()
	case WideIO:
		return wideIOPreset()
	default:
		return ddr3Preset()
	}
}

// Presets returns one representative device for each protocol.
func Presets() []Spec {
	return []Spec{
		ddr3Preset(),
		ddr4Preset(),
		lpddr4Preset(),
		wideIOPreset(),
	}
}

func ddr3Preset() Spec {
	return Spec{
		Name:        "DDR3-1600-4Gb-x8",
		Protocol:    DDR3,
		ClockMHz:    800,
		DataRate:    2,
		BurstLength: 8,
		Ranks:       2,
		BankGroups:  1,
		Banks:       8,
		Timing: Timing{
			RAS: 28, RP: 11, RCD: 11, RC: 39,
			RFC: 208, REFI: 6240,
			RL: 11, WL: 8, AL: 0, DQSCK: 0,
			RTP: 6, WR: 12,
			XP: 5, XPDLL: 20, XS: 216, XSDLL: 512,
			CKESR: 5,
		},
		Domains: []Domain{{
			Voltage: 1.5,
			Currents: Currents{
				IDD0: 55, IDD2N: 32, IDD2P0: 12, IDD2P1: 18,
				IDD3N: 38, IDD3P0: 30, IDD3P1: 30,
				IDD4R: 157, IDD4W: 128, IDD5: 235, IDD6: 20,
			},
		}},
	}
}

func ddr4Preset() Spec {
	return Spec{
		Name:        "DDR4-2400-8Gb-x8",
		Protocol:    DDR4,
		ClockMHz:    1200,
		DataRate:    2,
		BurstLength: 8,
		Ranks:       1,
		BankGroups:  4,
		Banks:       16,
		Timing: Timing{
			RAS: 39, RP: 16, RCD: 16, RC: 55,
			RFC: 420, REFI: 9360,
			RL: 16, WL: 12, AL: 0, DQSCK: 2,
			RTP: 9, WR: 18,
			XP: 8, XPDLL: 29, XS: 432, XSDLL: 768,
			CKESR: 7,
		},
		Domains: []Domain{
			{
				Voltage: 1.2,
				Currents: Currents{
					IDD0: 58, IDD2N: 44, IDD2P0: 25, IDD2P1: 25,
					IDD3N: 61, IDD3P0: 44, IDD3P1: 44,
					IDD4R: 140, IDD4W: 156, IDD5: 190, IDD6: 27,
				},
			},
			{
				Voltage: 2.5,
				Currents: Currents{
					IDD0: 4, IDD2N: 3, IDD2P0: 3, IDD2P1: 3,
					IDD3N: 3, IDD3P0: 3, IDD3P1: 3,
					IDD4R: 3, IDD4W: 3, IDD5: 5, IDD6: 4,
				},
			},
		},
	}
}

func lpddr4Preset() Spec {
	return Spec{
		Name:        "LPDDR4-3200-8Gb-x16",
		Protocol:    LPDDR4,
		ClockMHz:    1600,
		DataRate:    2,
		BurstLength: 16,
		Ranks:       1,
		BankGroups:  1,
		Banks:       8,
		Timing: Timing{
			RAS: 68, RP: 29, RCD: 29, RC: 97,
			RFC: 448, RFCPB: 224, REFI: 6248,
			RL: 28, WL: 14, AL: 0, DQSCK: 6,
			RTP: 12, WR: 29,
			XP: 12, XS: 460,
			CKESR: 24,
		},
		Domains: []Domain{
			{
				Voltage: 1.8,
				Currents: Currents{
					IDD0: 4, IDD2N: 2, IDD2P0: 1, IDD2P1: 1,
					IDD3N: 3, IDD3P0: 1, IDD3P1: 1,
					IDD4R: 5, IDD4W: 5, IDD5: 28, IDD5PB: 4, IDD6: 1,
					IDD6DS: 0.5,
				},
			},
			{
				Voltage: 1.1,
				Currents: Currents{
					IDD0: 40, IDD2N: 22, IDD2P0: 2, IDD2P1: 2,
					IDD3N: 30, IDD3P0: 6, IDD3P1: 6,
					IDD4R: 235, IDD4W: 210, IDD5: 90, IDD5PB: 38, IDD6: 2,
					IDD6DS: 1,
				},
			},
		},
	}
}

func wideIOPreset() Spec {
	return Spec{
		Name:        "WideIO-SDR200-256Mb",
		Protocol:    WideIO,
		ClockMHz:    200,
		DataRate:    1,
		BurstLength: 4,
		Ranks:       1,
		BankGroups:  1,
		Banks:       4,
		Timing: Timing{
			RAS: 8, RP: 4, RCD: 4, RC: 12,
			RFC: 18, REFI: 780,
			RL: 3, WL: 1, AL: 0, DQSCK: 0,
			RTP: 1, WR: 3,
			XP: 2, XS: 20,
			CKESR: 3,
		},
		Domains: []Domain{
			{
				Voltage: 1.8,
				Currents: Currents{
					IDD0: 1.5, IDD2N: 0.2, IDD2P0: 0.1, IDD2P1: 0.1,
					IDD3N: 0.4, IDD3P0: 0.2, IDD3P1: 0.2,
					IDD4R: 1.5, IDD4W: 1.3, IDD5: 3, IDD6: 0.1,
					IDD6DS: 0.05,
				},
			},
			{
				Voltage: 1.2,
				Currents: Currents{
					IDD0: 5.9, IDD2N: 0.4, IDD2P0: 0.1, IDD2P1: 0.1,
					IDD3N: 0.9, IDD3P0: 0.3, IDD3P1: 0.3,
					IDD4R: 10, IDD4W: 9, IDD5: 12, IDD6: 0.2,
					IDD6DS: 0.1,
				},
			},
		},
	}
}
