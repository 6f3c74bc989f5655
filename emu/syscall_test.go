package emu_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfcbench/emu"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

var _ = Describe("Syscall Handler", func() {
	var (
		regFile *emu.RegFile
		memory  *emu.Memory
		stdout  *bytes.Buffer
		stderr  *bytes.Buffer
		handler *emu.DefaultSyscallHandler
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		memory = emu.NewMemory()
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		handler = emu.NewDefaultSyscallHandler(emu.ABIA64, regFile, memory, stdout, stderr)
	})

	It("should exit with the status in X0", func() {
		regFile.WriteReg(8, emu.ABIA64.Exit)
		regFile.WriteReg(0, 3)

		result := handler.Handle()

		Expect(result.Exited).To(BeTrue())
		Expect(result.ExitCode).To(Equal(int64(3)))
	})

	It("should write a buffer to stdout", func() {
		memory.LoadProgram(0x8000, []byte("bfc\n"))
		regFile.WriteReg(8, emu.ABIA64.Write)
		regFile.WriteReg(0, 1)
		regFile.WriteReg(1, 0x8000)
		regFile.WriteReg(2, 4)

		result := handler.Handle()

		Expect(result.Exited).To(BeFalse())
		Expect(stdout.String()).To(Equal("bfc\n"))
		Expect(regFile.ReadReg(0)).To(Equal(uint64(4)))
	})

	It("should write to stderr for fd 2", func() {
		memory.LoadProgram(0x8000, []byte("err"))
		regFile.WriteReg(8, emu.ABIA64.Write)
		regFile.WriteReg(0, 2)
		regFile.WriteReg(1, 0x8000)
		regFile.WriteReg(2, 3)

		handler.Handle()

		Expect(stderr.String()).To(Equal("err"))
	})

	It("should return -EBADF for other descriptors", func() {
		regFile.WriteReg(8, emu.ABIA64.Write)
		regFile.WriteReg(0, 5)

		handler.Handle()

		Expect(int64(regFile.ReadReg(0))).To(Equal(int64(-emu.EBADF)))
	})

	It("should return -EIO when the writer fails", func() {
		handler = emu.NewDefaultSyscallHandler(emu.ABIA64, regFile, memory, failingWriter{}, stderr)
		regFile.WriteReg(8, emu.ABIA64.Write)
		regFile.WriteReg(0, 1)
		regFile.WriteReg(2, 1)

		handler.Handle()

		Expect(int64(regFile.ReadReg(0))).To(Equal(int64(-emu.EIO)))
	})

	It("should return -EINVAL for a count beyond the write limit", func() {
		regFile.WriteReg(8, emu.ABIA64.Write)
		regFile.WriteReg(0, 1)
		regFile.WriteReg(2, 1<<62)

		var result emu.SyscallResult
		Expect(func() { result = handler.Handle() }).ToNot(Panic())

		Expect(result.Exited).To(BeFalse())
		Expect(int64(regFile.ReadReg(0))).To(Equal(int64(-emu.EINVAL)))
		Expect(stdout.Len()).To(BeZero())
	})

	It("should accept a count at the write limit", func() {
		regFile.WriteReg(8, emu.ABIA64.Write)
		regFile.WriteReg(0, 1)
		regFile.WriteReg(2, emu.MaxWriteCount)

		handler.Handle()

		Expect(regFile.ReadReg(0)).To(Equal(uint64(emu.MaxWriteCount)))
		Expect(stdout.Len()).To(Equal(emu.MaxWriteCount))
	})

	It("should return -ENOSYS for unknown syscalls", func() {
		regFile.WriteReg(8, 999)

		result := handler.Handle()

		Expect(result.Exited).To(BeFalse())
		Expect(int64(regFile.ReadReg(0))).To(Equal(int64(-emu.ENOSYS)))
	})

	It("should read the syscall number from R7 under the EABI", func() {
		handler = emu.NewDefaultSyscallHandler(emu.ABIT32, regFile, memory, stdout, stderr)
		regFile.WriteReg(7, emu.ABIT32.Exit)
		regFile.WriteReg(8, emu.ABIA64.Exit)

		Expect(handler.Handle().Exited).To(BeTrue())
	})

	Describe("EABI", func() {
		BeforeEach(func() {
			handler = emu.NewDefaultSyscallHandler(emu.ABIT32, regFile, memory, stdout, stderr)
		})

		It("should sign-extend the 32-bit exit status", func() {
			regFile.WriteReg(7, emu.ABIT32.Exit)
			regFile.WriteReg32(0, 0xFFFFFFFF)

			result := handler.Handle()

			Expect(result.Exited).To(BeTrue())
			Expect(result.ExitCode).To(Equal(int64(-1)))
		})

		It("should ignore the upper register half in write arguments", func() {
			memory.LoadProgram(0x8000, []byte("r0"))
			regFile.WriteReg(7, emu.ABIT32.Write)
			regFile.WriteReg(0, 0xFFFFFFFF_00000001)
			regFile.WriteReg(1, 0xFFFFFFFF_00008000)
			regFile.WriteReg(2, 0xFFFFFFFF_00000002)

			handler.Handle()

			Expect(stdout.String()).To(Equal("r0"))
			Expect(regFile.ReadReg32(0)).To(Equal(uint32(2)))
		})
	})
})
