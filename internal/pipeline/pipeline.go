// Package pipeline orchestrates the emulation workflow stages: loading the
// cartridge, creating the mapper, the address space and the CPU, running the
// instruction loop and evaluating the test ROM output.
package pipeline

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogb/internal/cartridge"
	"github.com/retroenv/retrogb/internal/cpu"
	"github.com/retroenv/retrogb/internal/loader"
	"github.com/retroenv/retrogb/internal/mapper"
	"github.com/retroenv/retrogb/internal/memory"
	"github.com/retroenv/retrogb/internal/options"
	"github.com/retroenv/retrogb/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// checkInterval is the number of steps between checks of the context and of the
// serial output, must be a power of 2.
const checkInterval = 4096

// StopReason describes why a run ended.
type StopReason string

// Reasons for the end of a run.
const (
	StopHalted    StopReason = "halted"
	StopVerdict   StopReason = "test result"
	StopStepLimit StopReason = "step limit"
)

// Result contains the outcome of a run.
type Result struct {
	Reason       StopReason
	Verdict      verification.Verdict
	Instructions uint64
	Cycles       uint64
	Registers    cpu.Registers
	SerialLines  []string
}

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute runs the complete emulation pipeline for the input file.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (*Result, error) {
	cart, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	return p.ExecuteWithCartridge(ctx, cart, opts)
}

// ExecuteWithCartridge runs the emulation pipeline with a pre-loaded cartridge.
// This is useful for testing and programmatic usage where the cartridge is already in memory.
func (p *Pipeline) ExecuteWithCartridge(ctx context.Context, cart *cartridge.Cartridge, opts options.Program) (*Result, error) {
	var mapperOpts mapper.Options
	if opts.Save && opts.Input != "" {
		mapperOpts.SavePath = loader.SavePath(opts.Input)
	}

	m, err := mapper.New(p.logger, cart, mapperOpts)
	if err != nil {
		return nil, fmt.Errorf("creating mapper: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			p.logger.Error("Closing cartridge RAM failed", log.Err(err))
		}
	}()

	p.printInfo(opts, cart, m)

	space := memory.New(p.logger, cart.ROM, m)
	processor := cpu.New(p.logger)
	if opts.Trace {
		processor.SetTracer(&traceLogger{logger: p.logger})
	}

	reason, err := p.run(ctx, processor, space, opts.Steps)
	result := &Result{
		Reason:       reason,
		Instructions: processor.Instructions(),
		Cycles:       processor.Cycles(),
		Registers:    *processor.Registers(),
		SerialLines:  space.SerialLines(),
	}
	if err != nil {
		return result, err
	}

	result.Verdict, err = verification.VerifyOutput(p.logger, space.SerialLines(), space.SerialPending())
	if !opts.Quiet {
		p.logger.Info("Run finished",
			log.String("reason", string(result.Reason)),
			log.String("verdict", result.Verdict.String()),
			log.Int("instructions", int(result.Instructions)),
			log.Int("cycles", int(result.Cycles)),
		)
	}
	if err != nil {
		return result, fmt.Errorf("verifying output: %w", err)
	}
	return result, nil
}

// run steps the CPU until it halts, the test ROM reported a result, the step
// limit is reached or the context is canceled. Without interrupt delivery a
// halted CPU never resumes.
func (p *Pipeline) run(ctx context.Context, processor *cpu.CPU, space *memory.AddressSpace, limit uint64) (StopReason, error) {
	for step := uint64(0); limit == 0 || step < limit; step++ {
		if step%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return "", fmt.Errorf("running cartridge: %w", err)
			}
			if step > 0 && verification.Evaluate(space.SerialLines(), space.SerialPending()) != verification.Unknown {
				return StopVerdict, nil
			}
		}

		if _, err := processor.Step(space); err != nil {
			return "", fmt.Errorf("running cartridge: %w", err)
		}
		if processor.Halted() {
			return StopHalted, nil
		}
	}
	return StopStepLimit, nil
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(opts options.Program, cart *cartridge.Cartridge, m mapper.Mapper) {
	if opts.Quiet {
		return
	}

	header := cart.Header
	p.logger.Info("Running ROM",
		log.String("file", opts.Input),
		log.String("title", header.Title),
		log.String("type", header.TypeName()),
		log.String("mapper", m.Name()),
		log.Int("rom_size", header.ROMSize()),
		log.Int("ram_size", header.RAMSize()),
	)

	if !header.ValidLogo() {
		p.logger.Warn("Cartridge logo does not match, real hardware would not boot this ROM")
	}
	if !cart.ValidChecksum() {
		p.logger.Warn("Cartridge header checksum mismatch",
			log.Hex("expected", cartridge.HeaderChecksum(cart.ROM)),
			log.Hex("got", header.Checksum))
	}
}

// traceLogger logs every instruction before it is executed.
type traceLogger struct {
	logger *log.Logger
}

func (t *traceLogger) Trace(regs *cpu.Registers, ins cpu.Instruction) {
	t.logger.Debug("Trace",
		log.String("address", ins.Address.String()),
		log.String("instruction", ins.String()),
		log.String("registers", regs.String()),
	)
}
