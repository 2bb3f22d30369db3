package srp_test

import (
	"math/big"
	"testing"

	"github.com/fzdarsky/srp6a/pkg/srp"
	"github.com/stretchr/testify/require"
)

// RFC 5054 Appendix B test vectors (1024-bit group, SHA-1).
const (
	rfcUsername = "alice"
	rfcPassword = "password123"
	rfcSalt     = "BEB25379D1A8581EB5A727673A2441EE"

	rfcK = "7556AA045AEF2CDD07ABAF0F665C3E818913186F"
	rfcX = "94B7555AABE9127CC58CCF4993DB6CF84D16C124"
	rfcV = "7E273DE8696FFC4F4E337D05B4B375BEB0DDE1569E8FA00A9886D8129BADA1F1" +
		"822223CA1A605B530E379BA4729FDC59F105B4787E5186F5C671085A1447B52A" +
		"48CF1970B4FB6F8400BBF4CEBFBB168152E08AB5EA53D15C1AFF87B2B9DA6E04" +
		"E058AD51CC72BFC9033B564E26480D78E955A5E29E7AB245DB2BE315E2099AFB"

	rfcPrivA = "60975527035CF2AD1989806F0407210BC81EDC04E2762A56AFD529DDDA2D4393"
	rfcPrivB = "E487CB59D31AC550471E81F00F6928E01DDA08E974A004F49E61F5D105284D20"

	rfcA = "61D5E490F6F1B79547B0704C436F523DD0E560F0C64115BB72557EC44352E890" +
		"3211C04692272D8B2D1A5358A2CF1B6E0BFCF99F921530EC8E39356179EAE45E" +
		"42BA92AEACED825171E1E8B9AF6D9C03E1327F44BE087EF06530E69F66615261" +
		"EEF54073CA11CF5858F0EDFDFE15EFEAB349EF5D76988A3672FAC47B0769447B"
	rfcB = "BD0C61512C692C0CB6D041FA01BB152D4916A1E77AF46AE105393011BAF38964" +
		"DC46A0670DD125B95A981652236F99D9B681CBF87837EC996C6DA04453728610" +
		"D0C6DDB58B318885D7D82C7F8DEB75CE7BD4FBAA37089E6F9C6059F388838E7A" +
		"00030B331EB76840910440B1B27AAEAEEB4012B7D7665238A8E3FB004B117B58"
	rfcU = "CE38B9593487DA98554ED47D70A7AE5F462EF019"
	rfcS = "B0DC82BABCF30674AE450C0287745E7990A3381F63B387AAF271A10D233861E3" +
		"59B48220F7C4693C9AE12B0A6F67809F0876E2D013800D6C41BB59B6D5979B5C" +
		"00A172B4A2A5903A0BDCAF8A709585EB2AFAFA8F3499B200210DCC1F10EB3394" +
		"3CD67FC88A2F39A4BE5BEC4EC0A3212DC346D7E474B29EDE8A469FFECA686E5A"
)

// proofVector holds K, M1 and M2 computed from the RFC 5054 A, B and S
// with the given hash.
type proofVector struct {
	hash srp.Hash
	K    string
	M1   string
	M2   string
}

var proofVectors = []proofVector{
	{
		hash: srp.SHA1,
		K:    "017EEFA1CEFC5C2E626E21598987F31E0F1B11BB",
		M1:   "3F3BC67169EA71302599CF1B0F5D408B7B65D347",
		M2:   "9CAB3C575A11DE37D3AC1421A9F009236A48EB55",
	},
	{
		hash: srp.SHA256,
		K:    "C370461D9D28F31C1D20F988907C3FB8EDA57B7AA2EC149ECB2260D8E91A9931",
		M1:   "79BD06B66CE6C85E02A85BBD80D5CE6CA4A0A86939B7D0F913012C6101A77546",
		M2:   "491F3622627F1E942E64D9D61BD64BCB3796B697805EF7E279A57C01C7B63222",
	},
	{
		hash: srp.SHA384,
		K:    "D4E3B2E5ABCCF9F54EB12F55D4B26A23BAA11541414F4CAB7CDC185C5C28C69D0BD0B66F353EABCD63B748CEAB45D8FC",
		M1:   "C0318E36BC854EFAE4D8ECD18A4CA1EC95A67A672A4EC2BCF170B577D312DA80AB26BEED788AB9713326AEDB3E9A0297",
		M2:   "6D4F1C4FFE20286D0263F10BB4917ECC5C77B70DC453158CC43F0ED1DB2C430E0A14A68B9420C8E956A41DC5D2E3218F",
	},
	{
		hash: srp.SHA512,
		K: "EB86BD35F055213D911E74BA485D516D2C7D648ECA4FD7C4FD474CF9FFF1D3A8" +
			"B0EFCB6BC0F2B07530BD02D6EA12F85F550B136958F783E4B84D47F727AE4B23",
		M1: "8AE46F403CAEA982FCF3E34A3DDFDC9265059DBEA08F0C45A4E0B9672904C343" +
			"C8FD087B0C23F8E0261D0E1FEDD730CD6DDC74EC53EA09D5CD920DB5EE2F8E27",
		M2: "5C0EFFC6FB406E41E908D0B985F037128C88AC74A235EABB82FBAEBD8B3B7E8A" +
			"7238EAA1A1541ABAC609C2DBAD15C7A30E79CCAB0C65AC4AA5226E78E2596BC4",
	},
}

// The same credentials and exponents run end to end with SHA-256.
const (
	sha256K  = "1A1A4C140CDE70AE360C1EC33A33155B1022DF951732A476A862EB3AB8206A5C"
	sha256X  = "0065AC38DFF8BC34AE0F259E91FBD0F4CA2FA43081C9050CEC7CAC20D015F303"
	sha256U  = "C557AF6030C3DF27B4704462DF2ECEAEAED5D16B4C7D87FDF992E282F985293E"
	sha256SK = "FEBAC740E997507C1C7DF7690BAC49A97F84ECDA99CEB047C575B58E160C477B"
	sha256M1 = "51D0AF1793F2921CFC4A41BC5134605A7BF89A3497AED7C29ED6C56AE709037F"
	sha256M2 = "2F6B44340BF8DC05148B6B3AE1D70B6A896588BA6B2C16D8AEC619D2CC57653F"
	sha256B  = "439B7630EC82C94D3BBD466A068D663A40B8D5B1D9B006BA43F5D715498088CC" +
		"A8547BBE3DE6406C79F15FFA7356BC93580E478322DAF8B2D014347859234F01" +
		"555C457AB8B7F214875224FC9BFD07A68F37BAD4D74BC8467CE10EA39301D360" +
		"4E91FFF5F881D52C558187E68FAC3268DF2897307DA5C58A8C667E0FA8DC837E"
)

func rfcGroup(t *testing.T) *srp.Group {
	t.Helper()
	grp, err := srp.LookupGroup(srp.Group1024)
	require.NoError(t, err)
	return grp
}

func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	n, err := srp.HexToInt(s)
	require.NoError(t, err)
	return n
}

func mustBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := srp.HexToBytes(s, 0)
	require.NoError(t, err)
	return b
}
